package kv_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/hclutil"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder used by a Loader.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Loader decodes TOML or YAML files into the format-agnostic model.
type Loader struct {
	format Format
}

// NewTOMLLoader creates a loader for .toml files.
func NewTOMLLoader() *Loader {
	return &Loader{format: FormatTOML}
}

// NewYAMLLoader creates a loader for .yaml/.yml files.
func NewYAMLLoader() *Loader {
	return &Loader{format: FormatYAML}
}

// Load decodes the file and translates every section it contains.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Key/value loader started.", "path", path, "format", l.format)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	raw := make(map[string]any)
	switch l.format {
	case FormatTOML:
		err = toml.Unmarshal(src, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(src, &raw)
	default:
		err = fmt.Errorf("unsupported format %q", l.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file %s: %w", l.format, path, err)
	}

	defaults := make(map[string]any)
	tables := make(map[string]map[string]any)
	for key, val := range raw {
		if table, ok := val.(map[string]any); ok {
			tables[key] = table
			continue
		}
		defaults[key] = val
	}
	if len(tables) == 0 {
		// A flat file is a single anonymous section.
		tables[config.DefaultSectionName] = defaults
		defaults = nil
	}

	file := &config.File{Path: path, Sections: make(map[string]*config.Section, len(tables))}
	for name, table := range tables {
		merged := make(map[string]any, len(defaults)+len(table))
		for k, v := range defaults {
			merged[k] = v
		}
		for k, v := range table {
			merged[k] = v
		}

		section, err := translateSection(name, filepath.Clean(path), merged)
		if err != nil {
			return nil, err
		}
		file.Sections[name] = section
	}

	logger.Debug("Key/value loading complete.", "sections", file.SectionNames())
	return file, nil
}

func translateSection(name, source string, values map[string]any) (*config.Section, error) {
	section := config.NewSection(name, source)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []string
	for _, key := range keys {
		if err := translateKey(section, key, values[key]); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("in section '%s':\n- %s", name, strings.Join(errs, "\n- "))
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}
	return section, nil
}

func translateKey(section *config.Section, key string, val any) error {
	if role, ok := config.RoleForKey(key); ok {
		name, err := asString(key, val)
		section.Roles[role] = name
		return err
	}

	var err error
	switch key {
	case config.KeyModule:
		section.Module, err = asString(key, val)
	case config.KeyFunc:
		section.Func, err = asString(key, val)
	case config.KeyTitle:
		section.Title, err = asString(key, val)
	case config.KeyOuterVars:
		section.OuterVars, err = asNames(key, val)
	case config.KeyLabelSuppressVars:
		section.LabelSuppressVars, err = asNames(key, val)
	default:
		entry := &config.Entry{Name: key}
		if s, ok := val.(string); ok {
			entry.Expr, _ = hclutil.ParseExprOrLiteral(s, section.Source)
			entry.Literal = s
		} else {
			entry.Expr, err = hclutil.ExprFromNative(val, section.Source)
			entry.Literal = fmt.Sprint(val)
		}
		section.Entries = append(section.Entries, entry)
	}
	return err
}

func asString(key string, val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("'%s' must be a string, got %T", key, val)
	}
	return strings.TrimSpace(s), nil
}

// asNames accepts a list of strings or a single comma/space separated string.
func asNames(key string, val any) ([]string, error) {
	switch v := val.(type) {
	case string:
		return strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }), nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("'%s' must list names as strings, got %T", key, item)
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("'%s' must be a list of names, got %T", key, val)
	}
}
