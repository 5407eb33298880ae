package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and translates every section it
	// contains into the format-agnostic model.
	Load(ctx context.Context, path string) (*File, error)
}
