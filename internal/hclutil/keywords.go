package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// KeywordOrString accepts either a bare identifier (`x_var = time`) or a string
// literal (`x_var = "time"`) and returns the name it spells.
func KeywordOrString(expr hcl.Expression) (string, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name",
			Detail:   "Expected a bare identifier or a string naming a parameter.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}

// KeywordList accepts a tuple of identifiers or strings, e.g.
// `outer_vars = [coupling, "load"]`.
func KeywordList(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(exprs))
	for _, e := range exprs {
		name, nameDiags := KeywordOrString(e)
		diags = append(diags, nameDiags...)
		if nameDiags.HasErrors() {
			continue
		}
		names = append(names, name)
	}
	return names, diags
}
