package utils

import "slices"

// AppendUnique appends item unless it is already present (avoid duplicate borders etc..)
func AppendUnique[T comparable](slice []T, item T) []T {
	if slices.Contains(slice, item) {
		return slice
	}
	return append(slice, item)
}
