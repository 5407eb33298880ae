package expr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ErrUnresolved is returned in strict mode when an entry references names
// that never become known.
var ErrUnresolved = errors.New("unresolved reference")

// Resolver evaluates the entries of a section against the names known so far.
type Resolver struct {
	strict    bool
	functions map[string]function.Function
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict makes unresolvable references fatal instead of falling back to
// the entry's literal text.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// NewResolver creates a Resolver with the standard function table.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{functions: Functions()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve evaluates every entry and returns the full set of known values:
// the constants, the seed values (typically target defaults) and every entry.
//
// Entries are evaluated once all the names they reference are known, so the
// order in the source does not matter. An entry whose references can never be
// satisfied (unknown names, cycles) becomes its literal source text, or an
// ErrUnresolved error in strict mode. Any other evaluation failure is an error.
func (r *Resolver) Resolve(ctx context.Context, entries []*config.Entry, seed map[string]cty.Value) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	known := make(map[string]cty.Value, len(Constants)+len(seed)+len(entries))
	for k, v := range Constants {
		known[k] = v
	}
	for k, v := range seed {
		known[k] = v
	}

	pending := make(map[string]*config.Entry, len(entries))
	for _, e := range entries {
		pending[e.Name] = e
	}

	for len(pending) > 0 {
		progressed, err := r.evaluateReady(ctx, entries, pending, known)
		if err != nil {
			return nil, err
		}
		if progressed {
			continue
		}

		// Nothing is ready. Settle entries that reference truly unknown names
		// first; if none do, the rest are cycles and are settled together.
		stuck := unknownReferrers(entries, pending, known)
		if len(stuck) == 0 {
			for _, e := range entries {
				if _, ok := pending[e.Name]; ok {
					stuck = append(stuck, e)
				}
			}
		}
		for _, e := range stuck {
			missing := missingNames(e, pending, known)
			if r.strict {
				return nil, fmt.Errorf("%w: '%s' references unknown name(s) %s", ErrUnresolved, e.Name, strings.Join(missing, ", "))
			}
			logger.Debug("Expression references unknown names, using literal text.", "name", e.Name, "literal", e.Literal, "unknown", missing)
			known[e.Name] = cty.StringVal(e.Literal)
			delete(pending, e.Name)
		}
	}

	return known, nil
}

// evaluateReady evaluates, in source order, every pending entry whose
// references are all known.
func (r *Resolver) evaluateReady(ctx context.Context, entries []*config.Entry, pending map[string]*config.Entry, known map[string]cty.Value) (bool, error) {
	logger := ctxlog.FromContext(ctx)
	progressed := false

	for _, e := range entries {
		if _, ok := pending[e.Name]; !ok || !isReady(e, pending, known) {
			continue
		}

		val, err := r.Eval(e.Expr, known)
		if err != nil {
			return false, fmt.Errorf("failed to evaluate '%s': %w", e.Name, err)
		}
		logger.Debug("Expression evaluated.", "name", e.Name, "value", val.GoString())
		known[e.Name] = val
		delete(pending, e.Name)
		progressed = true
	}
	return progressed, nil
}

// Eval evaluates a single expression against the given variables.
func (r *Resolver) Eval(expr hcl.Expression, vars map[string]cty.Value) (cty.Value, error) {
	evalCtx := &hcl.EvalContext{
		Variables: vars,
		Functions: r.functions,
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("expression did not produce a known value")
	}
	return val, nil
}

// isReady reports whether every name the entry references is known and not
// waiting on another pending entry. A self reference reads the seed value.
func isReady(e *config.Entry, pending map[string]*config.Entry, known map[string]cty.Value) bool {
	for _, name := range hclutil.RootNames(e.Expr) {
		if _, waiting := pending[name]; waiting && name != e.Name {
			return false
		}
		if _, ok := known[name]; !ok {
			return false
		}
	}
	return true
}

// unknownReferrers returns pending entries that reference a name that is
// neither known nor defined by another pending entry.
func unknownReferrers(entries []*config.Entry, pending map[string]*config.Entry, known map[string]cty.Value) []*config.Entry {
	var out []*config.Entry
	for _, e := range entries {
		if _, ok := pending[e.Name]; !ok {
			continue
		}
		for _, name := range hclutil.RootNames(e.Expr) {
			_, isKnown := known[name]
			_, isPending := pending[name]
			if !isKnown && (!isPending || name == e.Name) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func missingNames(e *config.Entry, pending map[string]*config.Entry, known map[string]cty.Value) []string {
	var missing []string
	for _, name := range hclutil.RootNames(e.Expr) {
		_, isKnown := known[name]
		_, isPending := pending[name]
		if !isKnown || (isPending && name != e.Name) {
			missing = append(missing, name)
		}
	}
	return missing
}
