package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// SimpleModule registers deterministic test targets under the "test" module:
//
//	linear(x, slope, offset=0)      slope*x + offset
//	flaky(x, fail_at=-1)            x*x, an error when x == fail_at
//	labeled(x, label="a")           len(label) * x, with a string parameter
//
// Calls counts every invocation across all targets.
type SimpleModule struct {
	Calls atomic.Int64
}

// Register registers the test targets.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.Register(&registry.Target{
		Module: "test",
		Name:   "linear",
		Params: []registry.Param{
			registry.Number("x"),
			registry.Number("slope"),
			registry.NumberDefault("offset", 0),
		},
		Fn: m.count(registry.NumberFn(func(a []float64) (float64, bool) {
			return a[1]*a[0] + a[2], true
		})),
	})

	r.Register(&registry.Target{
		Module: "test",
		Name:   "flaky",
		Params: []registry.Param{
			registry.Number("x"),
			registry.NumberDefault("fail_at", -1),
		},
		Fn: m.count(func(args []cty.Value) (cty.Value, error) {
			if args[0].Equals(args[1]).True() {
				return cty.NilVal, fmt.Errorf("refusing x=%s", args[0].AsBigFloat().String())
			}
			return args[0].Multiply(args[0]), nil
		}),
	})

	r.Register(&registry.Target{
		Module: "test",
		Name:   "labeled",
		Params: []registry.Param{
			registry.Number("x"),
			registry.StringDefault("label", "a"),
		},
		Fn: m.count(func(args []cty.Value) (cty.Value, error) {
			n := cty.NumberIntVal(int64(len(args[1].AsString())))
			return args[0].Multiply(n), nil
		}),
	})
}

func (m *SimpleModule) count(fn func([]cty.Value) (cty.Value, error)) func([]cty.Value) (cty.Value, error) {
	return func(args []cty.Value) (cty.Value, error) {
		m.Calls.Add(1)
		return fn(args)
	}
}
