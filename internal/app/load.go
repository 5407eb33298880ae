package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/hcl_adapter"
	"github.com/specialistvlad/sweepkit/internal/kv_adapter"
)

// loaderFor picks the configuration loader for a file by its extension.
func loaderFor(path string) (config.Loader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".toml":
		return kv_adapter.NewTOMLLoader(), nil
	case ".yaml", ".yml":
		return kv_adapter.NewYAMLLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q for %s (want .hcl, .toml, .yaml or .yml)", ext, path)
	}
}
