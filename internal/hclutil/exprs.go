package hclutil

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// RootNames returns the sorted, unique root names referenced by an expression.
// For `linspace(0, t_max, n)` it returns ["n", "t_max"].
func RootNames(expr hcl.Expression) []string {
	if expr == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		seen[traversal.RootName()] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseExprOrLiteral parses src as an HCL native-syntax expression. When src is
// not a valid expression it is kept as a literal string, and literal reports true.
func ParseExprOrLiteral(src, filename string) (expr hcl.Expression, literal bool) {
	trimmed := strings.TrimSpace(src)
	parsed, diags := hclsyntax.ParseExpression([]byte(trimmed), filename, hcl.InitialPos)
	if diags.HasErrors() {
		rng := hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos}
		return hcl.StaticExpr(cty.StringVal(src), rng), true
	}
	return parsed, false
}

// ExprFromNative wraps a value decoded by a generic unmarshaller (TOML, YAML)
// into a static expression. Strings are not handled here; callers parse them
// with ParseExprOrLiteral.
func ExprFromNative(v any, filename string) (hcl.Expression, error) {
	val, err := NativeToCty(v)
	if err != nil {
		return nil, err
	}
	rng := hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos}
	return hcl.StaticExpr(val, rng), nil
}

// NativeToCty converts a plain Go value (numbers, strings, bools, slices and
// string-keyed maps) into the cty value its JSON encoding implies.
func NativeToCty(v any) (cty.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("value %v cannot be represented: %w", v, err)
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to infer type of %s: %w", raw, err)
	}
	val, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to decode %s: %w", raw, err)
	}
	return val, nil
}

// SourceText returns the bytes of src covered by the expression's range.
func SourceText(expr hcl.Expression, src []byte) string {
	rng := expr.Range()
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.End.Byte <= rng.Start.Byte {
		return ""
	}
	return strings.TrimSpace(string(rng.SliceBytes(src)))
}
