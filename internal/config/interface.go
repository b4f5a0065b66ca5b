package config

import "context"

// Loader is the interface for a format-specific strategy loader.
type Loader interface {
	// Load reads strategy definitions from the given paths and translates
	// them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Strategy, error)
}
