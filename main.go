package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ludeme/config"
	"ludeme/engine"
	"ludeme/game"
	"ludeme/library"
	"ludeme/playout"
)

var (
	cfg        config.Config
	configPath string

	rootCmd = &cobra.Command{
		Use:           "ludeme",
		Short:         "Plays board games described as trees of ludemes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(cfg.Level())
			return nil
		},
	}
	gamesCmd = &cobra.Command{
		Use:   "games",
		Short: "Lists the available games",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range library.Names() {
				fmt.Println(name)
			}
		},
	}
	inspectCmd = &cobra.Command{
		Use:   "inspect [game]",
		Short: "Preprocesses a game and prints its flags, concepts and diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
	playCmd = &cobra.Command{
		Use:   "play [game]",
		Short: "Plays one game between random agents and prints the final board",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playoutCmd = &cobra.Command{
		Use:   "playout [game]",
		Short: "Runs random playouts in parallel and reports throughput and outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayout,
	}
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.AddCommand(gamesCmd, inspectCmd, playCmd, playoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("ludeme failed")
	}
}

// buildGame builds the game named on the command line, or the configured one.
func buildGame(args []string) (*game.Game, error) {
	name := cfg.Game
	if len(args) > 0 {
		name = args[0]
	}
	return library.Build(name)
}

func runInspect(cmd *cobra.Command, args []string) error {
	g, err := buildGame(args)
	if err != nil {
		return err
	}
	t := g.Topology()
	fmt.Printf("%s: %d players, %s board with %d sites\n", g.Name, g.NumPlayers, t.Kind(), t.NumSites())
	fmt.Printf("flags: %s\n", g.Flags())
	fmt.Printf("concepts: %s\n", strings.Join(game.ConceptNames(g.Concepts()), ", "))
	if err := g.Validate(); err != nil {
		fmt.Println(err)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	g, err := buildGame(args)
	if err != nil {
		return err
	}
	seed := cfg.Playout.Seed
	e, _, err := engine.NewLocalEngine(g, seed, engine.WithMaxMoves(cfg.Playout.MaxMoves))
	if err != nil {
		return err
	}
	agents := make([]engine.Agent, g.NumPlayers)
	for p := range agents {
		agents[p] = engine.NewRandomAgent(seed + uint64(p) + 1)
	}
	result, err := e.Run(agents)
	if err != nil {
		return err
	}
	fmt.Println(e.Context())
	fmt.Printf("%d moves in %s\n", result.Moves, result.Duration)
	return nil
}

func runPlayout(cmd *cobra.Command, args []string) error {
	g, err := buildGame(args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := playout.NewRunner(
		playout.WithWorkers(cfg.Playout.Workers),
		playout.WithPlayouts(cfg.Playout.Playouts),
		playout.WithMaxMoves(cfg.Playout.MaxMoves),
		playout.WithSeed(cfg.Playout.Seed),
	)
	summary, records, err := runner.Run(ctx, g)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d playouts, %d moves in %s (%.0f playouts/s, %.0f moves/s)\n", summary.Game,
		summary.Playouts, summary.Moves, summary.Duration, summary.PlayoutsPerSecond(), summary.MovesPerSecond())
	for p := 1; p < len(summary.Wins); p++ {
		fmt.Printf("  player %d wins: %d\n", p, summary.Wins[p])
	}
	fmt.Printf("  draws: %d, unfinished: %d\n", summary.Draws, summary.Unfinished)

	if cfg.Playout.OutputDir == "" {
		return nil
	}
	writer, err := playout.NewWriter(cfg.Playout.OutputDir, summary)
	if err != nil {
		return err
	}
	if err := writer.WriteSummary(summary); err != nil {
		return err
	}
	if err := writer.WriteRecords(records); err != nil {
		return err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}
