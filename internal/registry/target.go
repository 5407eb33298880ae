package registry

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
)

// Param describes one parameter of a target function.
type Param struct {
	Name string
	// Type is the cty type values are converted to before the call.
	// cty.DynamicPseudoType accepts anything.
	Type cty.Type
	// Default is nil for required (positional) parameters.
	Default *cty.Value
}

// Required reports whether the parameter has no default.
func (p Param) Required() bool {
	return p.Default == nil
}

// Target is a strongly typed function handle selectable from configuration.
type Target struct {
	Module      string
	Name        string
	Description string
	Params      []Param
	// Fn is called with one value per Param, in order. A null result marks a
	// missing output.
	Fn func(args []cty.Value) (cty.Value, error)
}

// Key returns the "module.func" identifier of the target.
func (t *Target) Key() string {
	return t.Module + "." + t.Name
}

// Param returns the parameter with the given name.
func (t *Target) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Defaults returns the default value of every optional parameter.
func (t *Target) Defaults() map[string]cty.Value {
	out := make(map[string]cty.Value)
	for _, p := range t.Params {
		if p.Default != nil {
			out[p.Name] = *p.Default
		}
	}
	return out
}

// Call invokes the target with arguments in parameter order.
func (t *Target) Call(args []cty.Value) (cty.Value, error) {
	if len(args) != len(t.Params) {
		return cty.NilVal, fmt.Errorf("%s: wrong number of arguments (%d required; %d given)", t.Key(), len(t.Params), len(args))
	}
	return t.Fn(args)
}

// Number declares a required numeric parameter.
func Number(name string) Param {
	return Param{Name: name, Type: cty.Number}
}

// NumberDefault declares an optional numeric parameter.
func NumberDefault(name string, def float64) Param {
	v := cty.NumberFloatVal(def)
	return Param{Name: name, Type: cty.Number, Default: &v}
}

// StringDefault declares an optional string parameter.
func StringDefault(name, def string) Param {
	v := cty.StringVal(def)
	return Param{Name: name, Type: cty.String, Default: &v}
}

// NumberFn adapts a plain float function into a Target.Fn. Every argument
// must be numeric; ok=false, NaN or Inf results become a null output.
func NumberFn(fn func(args []float64) (float64, bool)) func([]cty.Value) (cty.Value, error) {
	return func(args []cty.Value) (cty.Value, error) {
		fs := make([]float64, len(args))
		for i, a := range args {
			if a.IsNull() || a.Type() != cty.Number {
				return cty.NilVal, fmt.Errorf("argument %d must be a number", i)
			}
			fs[i], _ = a.AsBigFloat().Float64()
		}
		out, ok := fn(fs)
		if !ok || math.IsNaN(out) || math.IsInf(out, 0) {
			return cty.NullVal(cty.Number), nil
		}
		return cty.NumberFloatVal(out), nil
	}
}
