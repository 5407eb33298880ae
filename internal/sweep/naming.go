// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/zclconf/go-cty/cty"
)

const (
	maxNameValueLen = 40
	valueHashLen    = 8
)

// Title returns the figure title for one combination of outer values. The
// generated form is func(k=v, ...) over constant and outer parameters sorted
// by name; an explicit title keeps only the outer values as a suffix.
func (p *Plan) Title(outer map[string]cty.Value) string {
	if p.Section.Title != "" {
		names := p.labelNames(outer)
		if len(names) == 0 {
			return p.Section.Title
		}
		return p.Section.Title + " (" + pairs(names, outer, ", ") + ")"
	}

	values := p.withConstants(outer)
	names := p.labelNames(values)
	return p.Target.Name + "(" + pairs(names, values, ", ") + ")"
}

// FacetTitle returns the subtitle of a facet, e.g. "load=10, k=0.2".
// Unset roles are left out.
func (p *Plan) FacetTitle(row, col cty.Value) string {
	return p.roleLabel(rolePair{p.Roles[config.RoleRow], row}, rolePair{p.Roles[config.RoleCol], col})
}

// LineLabel returns the legend label of a line.
func (p *Plan) LineLabel(color, style cty.Value) string {
	return p.roleLabel(rolePair{p.Roles[config.RoleColor], color}, rolePair{p.Roles[config.RoleLineStyle], style})
}

// ImageFile returns the image path for one combination of outer values:
// <prefix>_<func>[_<k>=<v>...].png over outer and constant parameters sorted by name.
func (p *Plan) ImageFile(prefix string, outer map[string]cty.Value) string {
	return fileName(prefix, p.Target.Name, p.withConstants(outer), ".png")
}

// CSVFile returns the CSV path: <prefix>_<func>[_<k>=<v>...].csv over
// constant parameters sorted by name.
func (p *Plan) CSVFile(prefix string) string {
	return fileName(prefix, p.Target.Name, p.Constants, ".csv")
}

type rolePair struct {
	name  string
	value cty.Value
}

func (p *Plan) roleLabel(roles ...rolePair) string {
	values := make(map[string]cty.Value, len(roles))
	var names []string
	for _, r := range roles {
		if r.name == "" {
			continue
		}
		values[r.name] = r.value
		names = append(names, r.name)
	}
	return pairs(names, values, ", ")
}

// withConstants merges the constant values with the given outer values.
func (p *Plan) withConstants(outer map[string]cty.Value) map[string]cty.Value {
	merged := make(map[string]cty.Value, len(p.Constants)+len(outer))
	for k, v := range p.Constants {
		merged[k] = v
	}
	for k, v := range outer {
		merged[k] = v
	}
	return merged
}

// labelNames returns the sorted names of values that are not suppressed.
func (p *Plan) labelNames(values map[string]cty.Value) []string {
	var names []string
	for _, name := range sortedNames(values) {
		if !p.Suppressed(name) {
			names = append(names, name)
		}
	}
	return names
}

func fileName(prefix, fn string, values map[string]cty.Value, ext string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("_")
	b.WriteString(sanitize(fn))

	for _, name := range sortedNames(values) {
		b.WriteString("_")
		b.WriteString(sanitize(name))
		b.WriteString("=")
		b.WriteString(fileValue(FormatValue(values[name])))
	}
	b.WriteString(ext)
	return b.String()
}

// fileValue sanitizes a value for a file name. When sanitizing changed the
// value, a short hash of the raw text is appended so that distinct values
// keep distinct names.
func fileValue(raw string) string {
	safe := sanitize(raw)
	if safe == raw {
		return safe
	}
	sum := sha256.Sum256([]byte(raw))
	return safe + "_" + hex.EncodeToString(sum[:])[:valueHashLen]
}

// sanitize keeps a value safe for use inside a file name.
func sanitize(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '+':
			return r
		default:
			return '_'
		}
	}, s)
	if len(out) > maxNameValueLen {
		out = out[:maxNameValueLen]
	}
	return out
}
