package usecase

import (
	"context"
)

// AbbreviationRegistry maps abbreviations to canonical zone names.
// Replacement is total and last-writer-wins. No ordering is promised between
// a Replace and a concurrent read; callers needing that must serialize.
type AbbreviationRegistry interface {
	// Snapshot returns a copy of the current mapping
	Snapshot() map[string]string

	// Replace overwrites the whole mapping
	Replace(ctx context.Context, mapping map[string]string)

	// Lookup returns the name for abbreviation in the current mapping
	Lookup(abbreviation string) (string, bool)

	// ResetToDefault restores the zone database's built-in table
	ResetToDefault(ctx context.Context)
}
