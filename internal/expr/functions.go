package expr

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gonum.org/v1/gonum/floats"
)

// Constants are always known and may be shadowed by configuration entries.
var Constants = map[string]cty.Value{
	"pi": cty.NumberFloatVal(math.Pi),
	"e":  cty.NumberFloatVal(math.E),
}

// Functions returns the function table available to expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"range":     stdlib.RangeFunc,
		"linspace":  LinspaceFunc,
		"logspace":  LogspaceFunc,
		"geomspace": GeomspaceFunc,
		"concat":    stdlib.ConcatFunc,
		"reverse":   stdlib.ReverseListFunc,
		"distinct":  stdlib.DistinctFunc,
		"sort":      stdlib.SortFunc,
		"length":    stdlib.LengthFunc,
		"element":   stdlib.ElementFunc,
		"min":       stdlib.MinFunc,
		"max":       stdlib.MaxFunc,
		"abs":       stdlib.AbsoluteFunc,
		"ceil":      stdlib.CeilFunc,
		"floor":     stdlib.FloorFunc,
		"log":       stdlib.LogFunc,
		"pow":       stdlib.PowFunc,
		"sqrt":      SqrtFunc,
		"format":    stdlib.FormatFunc,
		"upper":     stdlib.UpperFunc,
		"lower":     stdlib.LowerFunc,
	}
}

var spanParams = []function.Parameter{
	{Name: "start", Type: cty.Number},
	{Name: "stop", Type: cty.Number},
	{Name: "num", Type: cty.Number},
}

// LinspaceFunc returns num evenly spaced values over [start, stop].
var LinspaceFunc = function.New(&function.Spec{
	Description: "Returns num evenly spaced numbers over the closed interval [start, stop].",
	Params:      spanParams,
	Type:        function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		start, stop, n, err := spanArgs(args)
		if err != nil {
			return cty.NilVal, err
		}
		return span(start, stop, n, floats.Span), nil
	},
})

// LogspaceFunc returns num values spaced evenly on a log scale between
// 10^start and 10^stop.
var LogspaceFunc = function.New(&function.Spec{
	Description: "Returns num numbers spaced evenly on a log scale from 10^start to 10^stop.",
	Params:      spanParams,
	Type:        function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		start, stop, n, err := spanArgs(args)
		if err != nil {
			return cty.NilVal, err
		}
		return span(math.Pow(10, start), math.Pow(10, stop), n, floats.LogSpan), nil
	},
})

// GeomspaceFunc returns num values in geometric progression from start to stop.
var GeomspaceFunc = function.New(&function.Spec{
	Description: "Returns num numbers spaced evenly on a log scale from start to stop.",
	Params:      spanParams,
	Type:        function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		start, stop, n, err := spanArgs(args)
		if err != nil {
			return cty.NilVal, err
		}
		if start <= 0 || stop <= 0 {
			return cty.NilVal, function.NewArgErrorf(0, "geomspace bounds must be positive")
		}
		return span(start, stop, n, floats.LogSpan), nil
	},
})

// SqrtFunc returns the square root of a non-negative number.
var SqrtFunc = function.New(&function.Spec{
	Description: "Returns the square root of a non-negative number.",
	Params:      []function.Parameter{{Name: "num", Type: cty.Number}},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		f, _ := args[0].AsBigFloat().Float64()
		if f < 0 {
			return cty.NilVal, function.NewArgErrorf(0, "cannot take the square root of %g", f)
		}
		return cty.NumberFloatVal(math.Sqrt(f)), nil
	},
})

func spanArgs(args []cty.Value) (start, stop float64, n int, err error) {
	start, _ = args[0].AsBigFloat().Float64()
	stop, _ = args[1].AsBigFloat().Float64()
	num := args[2].AsBigFloat()
	if !num.IsInt() {
		return 0, 0, 0, function.NewArgErrorf(2, "num must be a whole number")
	}
	n64, _ := num.Int64()
	if n64 < 1 {
		return 0, 0, 0, function.NewArgErrorf(2, "num must be at least 1, got %d", n64)
	}
	if math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return 0, 0, 0, fmt.Errorf("bounds must be finite")
	}
	return start, stop, int(n64), nil
}

func span(start, stop float64, n int, fill func(dst []float64, l, u float64) []float64) cty.Value {
	if n == 1 {
		return cty.ListVal([]cty.Value{cty.NumberFloatVal(start)})
	}
	dst := fill(make([]float64, n), start, stop)
	vals := make([]cty.Value, n)
	for i, f := range dst {
		vals[i] = cty.NumberFloatVal(f)
	}
	return cty.ListVal(vals)
}
