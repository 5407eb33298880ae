package registry

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// OutputColumn names the CSV column holding a target's result. No parameter
// may use it.
const OutputColumn = "output"

// Validate checks that every target can be driven from configuration: its
// parameter names are unique, valid identifiers, not reserved keys or the
// output column, and its defaults conform to the declared types.
func (r *Registry) Validate() error {
	var errs []string

	for _, t := range r.Targets() {
		seen := make(map[string]struct{}, len(t.Params))
		for _, p := range t.Params {
			if _, dup := seen[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("target '%s': parameter '%s' declared twice", t.Key(), p.Name))
			}
			seen[p.Name] = struct{}{}

			if !hclsyntax.ValidIdentifier(p.Name) {
				errs = append(errs, fmt.Sprintf("target '%s': parameter '%s' is not a valid identifier", t.Key(), p.Name))
			}
			if config.IsReservedKey(p.Name) {
				errs = append(errs, fmt.Sprintf("target '%s': parameter '%s' collides with a reserved configuration key", t.Key(), p.Name))
			}
			if p.Name == OutputColumn {
				errs = append(errs, fmt.Sprintf("target '%s': parameter '%s' collides with the output column", t.Key(), p.Name))
			}
			if p.Type == cty.NilType {
				errs = append(errs, fmt.Sprintf("target '%s': parameter '%s' has no type", t.Key(), p.Name))
				continue
			}
			if p.Default != nil {
				if _, err := convert.Convert(*p.Default, p.Type); err != nil {
					errs = append(errs, fmt.Sprintf("target '%s': default of '%s' does not conform to %s: %v", t.Key(), p.Name, p.Type.FriendlyName(), err))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
