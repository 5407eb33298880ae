// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import (
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FormatValue renders a value for CSV cells, labels and file names. Numbers
// use the shortest representation that round-trips, collections use JSON and
// null or unknown values are empty.
func FormatValue(v cty.Value) string {
	if v.IsNull() || !v.IsWhollyKnown() {
		return ""
	}
	switch ty := v.Type(); {
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return strconv.FormatBool(v.True())
	default:
		b, err := ctyjson.Marshal(v, ty)
		if err != nil {
			return v.GoString()
		}
		return string(b)
	}
}

// AsFloat returns the numeric value of v. ok is false for null, unknown,
// non-number and infinite values.
func AsFloat(v cty.Value) (float64, bool) {
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.Number {
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// pairs formats name=value pairs in the given name order, joined by sep.
func pairs(names []string, values map[string]cty.Value, sep string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+FormatValue(values[name]))
	}
	return strings.Join(parts, sep)
}
