// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Section structure, the unit a single sweep run is
// configured from.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Role identifies how a distinguisher variable differentiates plotted data.
type Role string

const (
	RoleX         Role = "x"
	RoleCol       Role = "col"
	RoleRow       Role = "row"
	RoleLineStyle Role = "linestyle"
	RoleColor     Role = "color"
)

// Roles lists every distinguisher role in plotting order.
var Roles = []Role{RoleX, RoleCol, RoleRow, RoleLineStyle, RoleColor}

// Key returns the configuration key that designates the role, e.g. "x_var".
func (r Role) Key() string {
	return string(r) + "_var"
}

// Reserved configuration keys. Every other key is a parameter value.
const (
	KeyModule            = "module"
	KeyFunc              = "func"
	KeyTitle             = "title"
	KeyOuterVars         = "outer_vars"
	KeyLabelSuppressVars = "label_suppress_vars"
)

// IsReservedKey reports whether key is interpreted by the driver itself rather
// than passed to the target function.
func IsReservedKey(key string) bool {
	switch key {
	case KeyModule, KeyFunc, KeyTitle, KeyOuterVars, KeyLabelSuppressVars:
		return true
	}
	for _, r := range Roles {
		if key == r.Key() {
			return true
		}
	}
	return false
}

// RoleForKey maps a "<role>_var" key back to its Role.
func RoleForKey(key string) (Role, bool) {
	for _, r := range Roles {
		if key == r.Key() {
			return r, true
		}
	}
	return "", false
}

// File is everything a loader found in one configuration file.
type File struct {
	Path     string
	Sections map[string]*Section
}

// DefaultSectionName is used when a file holds several sections and none was requested.
const DefaultSectionName = "default"

// Select picks the requested section. An empty name selects the only section
// of a single-section file, or the "default" section otherwise.
func (f *File) Select(name string) (*Section, error) {
	if name == "" {
		if len(f.Sections) == 1 {
			for _, s := range f.Sections {
				return s, nil
			}
		}
		name = DefaultSectionName
	}
	s, ok := f.Sections[name]
	if !ok {
		return nil, fmt.Errorf("section %q not found in %s (available: %s)", name, f.Path, strings.Join(f.SectionNames(), ", "))
	}
	return s, nil
}

// SectionNames returns the names of all sections, sorted.
func (f *File) SectionNames() []string {
	names := make([]string, 0, len(f.Sections))
	for name := range f.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Section is the format-agnostic representation of one sweep section.
type Section struct {
	Name   string
	Source string

	Module string
	Func   string
	Title  string

	// Roles maps each configured distinguisher role to its parameter name.
	// A role is present only if its key was supplied.
	Roles map[Role]string

	OuterVars         []string
	LabelSuppressVars []string

	// Entries holds every non-reserved key in source order.
	Entries []*Entry
}

// NewSection creates an empty section.
func NewSection(name, source string) *Section {
	return &Section{
		Name:   name,
		Source: source,
		Roles:  make(map[Role]string),
	}
}

// Entry is a single parameter (or helper) value expression.
type Entry struct {
	Name string
	Expr hcl.Expression
	// Literal is the fallback string value used when the expression references
	// names that never become known.
	Literal string
}

// Entry returns the entry with the given name, or nil.
func (s *Section) Entry(name string) *Entry {
	for _, e := range s.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Validate checks the structural requirements every loader must satisfy.
func (s *Section) Validate() error {
	var errs []string
	if s.Module == "" {
		errs = append(errs, fmt.Sprintf("'%s' is required", KeyModule))
	}
	if s.Func == "" {
		errs = append(errs, fmt.Sprintf("'%s' is required", KeyFunc))
	}
	seen := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		if _, dup := seen[e.Name]; dup {
			errs = append(errs, fmt.Sprintf("parameter '%s' is defined more than once", e.Name))
		}
		seen[e.Name] = struct{}{}
	}
	if len(errs) > 0 {
		return fmt.Errorf("section '%s' in %s is invalid:\n- %s", s.Name, s.Source, strings.Join(errs, "\n- "))
	}
	return nil
}
