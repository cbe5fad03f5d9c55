package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Report collects the soft diagnostics found while preprocessing a game. A
// game with diagnostics is still playable; the caller decides whether to
// reject it (see Game.Validate).
type Report struct {
	Game                string
	Warnings            []string
	MissingRequirements []string
	Crashes             []string
}

func NewReport(game string) *Report {
	return &Report{Game: game}
}

func (r *Report) AddWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	log.Warn().Str("game", r.Game).Msg(msg)
}

func (r *Report) AddMissingRequirement(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.MissingRequirements = append(r.MissingRequirements, msg)
	log.Warn().Str("game", r.Game).Str("kind", "missing requirement").Msg(msg)
}

func (r *Report) AddCrash(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Crashes = append(r.Crashes, msg)
	log.Warn().Str("game", r.Game).Str("kind", "will crash").Msg(msg)
}

func (r *Report) Empty() bool {
	return len(r.Warnings) == 0 && len(r.MissingRequirements) == 0 && len(r.Crashes) == 0
}

func (r *Report) String() string {
	var b strings.Builder
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	for _, m := range r.MissingRequirements {
		fmt.Fprintf(&b, "missing requirement: %s\n", m)
	}
	for _, c := range r.Crashes {
		fmt.Fprintf(&b, "will crash: %s\n", c)
	}
	return b.String()
}
