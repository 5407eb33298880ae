// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/expr"
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// RoleCaps is the maximum number of values each role may take. Zero means
// unbounded.
var RoleCaps = map[config.Role]int{
	config.RoleX:         0,
	config.RoleCol:       5,
	config.RoleRow:       5,
	config.RoleLineStyle: 4,
	config.RoleColor:     16,
}

// Class is the sweep classification of a target parameter.
type Class int

const (
	// Constant parameters keep one value for the whole sweep.
	Constant Class = iota
	// Inner parameters are bound to a plot role.
	Inner
	// Outer parameters produce one figure per value.
	Outer
)

func (c Class) String() string {
	switch c {
	case Inner:
		return "inner"
	case Outer:
		return "outer"
	default:
		return "constant"
	}
}

// Plan is a validated, fully resolved sweep.
type Plan struct {
	Target  *registry.Target
	Section *config.Section

	// Roles maps each configured role to its parameter name.
	Roles map[config.Role]string
	// OuterVars lists the outer parameters in configured order.
	OuterVars []string
	// Classes holds the classification of every target parameter.
	Classes map[string]Class
	// Series holds the converted value list of every inner and outer parameter.
	Series map[string][]cty.Value
	// Constants holds the converted value of every constant parameter.
	Constants map[string]cty.Value

	suppress map[string]struct{}
}

// NewPlan resolves the section against the registry and validates it. Errors
// wrap ErrConfig or ErrValidation.
func NewPlan(ctx context.Context, sec *config.Section, reg *registry.Registry, resolver *expr.Resolver) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	target, err := reg.Lookup(sec.Module, sec.Func)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if _, ok := sec.Roles[config.RoleX]; !ok {
		return nil, fmt.Errorf("%w: '%s' is required", ErrConfig, config.RoleX.Key())
	}

	p := &Plan{
		Target:    target,
		Section:   sec,
		Roles:     sec.Roles,
		OuterVars: sec.OuterVars,
		Classes:   make(map[string]Class, len(target.Params)),
		Series:    make(map[string][]cty.Value),
		Constants: make(map[string]cty.Value),
		suppress:  make(map[string]struct{}, len(sec.LabelSuppressVars)),
	}
	for _, name := range sec.LabelSuppressVars {
		p.suppress[name] = struct{}{}
	}

	if err := p.classify(); err != nil {
		return nil, err
	}

	for _, param := range target.Params {
		if param.Required() && sec.Entry(param.Name) == nil {
			return nil, fmt.Errorf("%w: missing required parameter '%s' for %s", ErrConfig, param.Name, target.Key())
		}
	}
	for _, e := range sec.Entries {
		if _, ok := target.Param(e.Name); !ok {
			logger.Warn("Key is not a parameter of the target, treating it as a helper value.", "key", e.Name, "target", target.Key())
		}
	}

	values, err := resolver.Resolve(ctx, sec.Entries, target.Defaults())
	if err != nil {
		return nil, fmt.Errorf("%w: section '%s': %w", ErrConfig, sec.Name, err)
	}

	for _, param := range target.Params {
		val := values[param.Name]
		if p.Classes[param.Name] == Constant {
			conv, err := convert.Convert(val, param.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: parameter '%s' must be %s: %s", ErrConfig, param.Name, param.Type.FriendlyName(), err)
			}
			p.Constants[param.Name] = conv
			continue
		}

		series, err := p.series(param, val)
		if err != nil {
			return nil, err
		}
		p.Series[param.Name] = series
	}

	if err := p.checkCaps(); err != nil {
		return nil, err
	}

	logger.Debug("Sweep planned.",
		"target", target.Key(),
		"inner", p.Names(Inner),
		"outer", p.OuterVars,
		"constant", p.Names(Constant),
		"evaluations", p.Evaluations(),
	)
	return p, nil
}

// classify assigns every target parameter to exactly one class.
func (p *Plan) classify() error {
	owner := make(map[string]string)
	var errs []string

	for _, role := range config.Roles {
		name, ok := p.Roles[role]
		if !ok {
			continue
		}
		if _, isParam := p.Target.Param(name); !isParam {
			errs = append(errs, fmt.Sprintf("%s '%s' is not a parameter of %s", role.Key(), name, p.Target.Key()))
			continue
		}
		if prev, dup := owner[name]; dup {
			errs = append(errs, fmt.Sprintf("'%s' is used by both %s and %s", name, prev, role.Key()))
			continue
		}
		owner[name] = role.Key()
		p.Classes[name] = Inner
	}

	for _, name := range p.OuterVars {
		if _, isParam := p.Target.Param(name); !isParam {
			errs = append(errs, fmt.Sprintf("outer variable '%s' is not a parameter of %s", name, p.Target.Key()))
			continue
		}
		if prev, dup := owner[name]; dup {
			errs = append(errs, fmt.Sprintf("'%s' is used by both %s and %s", name, prev, config.KeyOuterVars))
			continue
		}
		owner[name] = config.KeyOuterVars
		p.Classes[name] = Outer
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrValidation, strings.Join(errs, "\n- "))
	}

	for _, param := range p.Target.Params {
		if _, ok := p.Classes[param.Name]; !ok {
			p.Classes[param.Name] = Constant
		}
	}
	return nil
}

// series converts the value of an iterated parameter into its element list.
func (p *Plan) series(param registry.Param, val cty.Value) ([]cty.Value, error) {
	ty := val.Type()
	if val.IsNull() || !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		return nil, fmt.Errorf("%w: '%s' must be an iterable (list, tuple or range), got %s", ErrValidation, param.Name, describe(val))
	}
	if val.LengthInt() == 0 {
		return nil, fmt.Errorf("%w: '%s' has no values", ErrValidation, param.Name)
	}

	elems := val.AsValueSlice()
	out := make([]cty.Value, len(elems))
	for i, el := range elems {
		conv, err := convert.Convert(el, param.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d of '%s' must be %s: %s", ErrConfig, i, param.Name, param.Type.FriendlyName(), err)
		}
		out[i] = conv
	}
	return out, nil
}

func (p *Plan) checkCaps() error {
	var errs []string
	for _, role := range config.Roles {
		name, ok := p.Roles[role]
		if !ok {
			continue
		}
		limit := RoleCaps[role]
		if n := len(p.Series[name]); limit > 0 && n > limit {
			errs = append(errs, fmt.Sprintf("%s '%s' has %d values, more than the maximum of %d", role.Key(), name, n, limit))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrValidation, strings.Join(errs, "\n- "))
	}
	return nil
}

// Names returns the parameters of the given class in target order.
func (p *Plan) Names(c Class) []string {
	var out []string
	for _, param := range p.Target.Params {
		if p.Classes[param.Name] == c {
			out = append(out, param.Name)
		}
	}
	return out
}

// Role returns the value list of the parameter bound to role, or a single
// null placeholder when the role is unset.
func (p *Plan) Role(role config.Role) (string, []cty.Value) {
	name, ok := p.Roles[role]
	if !ok {
		return "", []cty.Value{cty.NilVal}
	}
	return name, p.Series[name]
}

// Evaluations is the number of target invocations the sweep performs.
func (p *Plan) Evaluations() int {
	n := 1
	for _, values := range p.Series {
		n *= len(values)
	}
	return n
}

// Suppressed reports whether the parameter is hidden from generated labels.
func (p *Plan) Suppressed(name string) bool {
	_, ok := p.suppress[name]
	return ok
}

// sortedNames returns the keys of m sorted.
func sortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describe(val cty.Value) string {
	if val.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%s %s", val.Type().FriendlyName(), FormatValue(val))
}
