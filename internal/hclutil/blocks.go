package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// IndexBlocksByLabel returns the blocks of the given type keyed by their first
// label. A diagnostic error is reported for every repeated label.
func IndexBlocksByLabel(blocks hcl.Blocks, blockType string) (map[string]*hcl.Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	found := make(map[string]*hcl.Block)

	for _, block := range blocks {
		if block.Type != blockType || len(block.Labels) == 0 {
			continue
		}
		label := block.Labels[0]
		if prev, exists := found[label]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "A \"" + blockType + "\" block named \"" + label + "\" was already declared at " + prev.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		found[label] = block
	}

	return found, diags
}
