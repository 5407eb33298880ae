// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import (
	"context"
	"maps"

	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Row is one target invocation: every argument in parameter order and the output.
type Row struct {
	Values []cty.Value
	Output cty.Value
}

// Line is one plotted series of a facet.
type Line struct {
	Label string
	// Color and Style index the color and line style values.
	Color int
	Style int
	Y     []float64
}

// Facet is one cell of a figure's row x column grid.
type Facet struct {
	Row, Col int
	Title    string
	Lines    []*Line
	// Legend is set on the facet that carries the figure legend.
	Legend bool
}

// Figure describes one output image.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	// Outer holds the outer values this figure was produced for.
	Outer map[string]cty.Value
	// X holds the x values shared by every line.
	X          []cty.Value
	Rows, Cols int
	// Facets are in row-major order.
	Facets []*Facet
}

// Facet returns the facet at the given grid cell.
func (f *Figure) Facet(row, col int) *Facet {
	return f.Facets[row*f.Cols+col]
}

// XFloats returns the numeric x values, or ok=false when any is not a number.
func (f *Figure) XFloats() ([]float64, bool) {
	out := make([]float64, len(f.X))
	for i, v := range f.X {
		x, ok := AsFloat(v)
		if !ok {
			return nil, false
		}
		out[i] = x
	}
	return out, true
}

// XLabels returns the formatted x values.
func (f *Figure) XLabels() []string {
	out := make([]string, len(f.X))
	for i, v := range f.X {
		out[i] = FormatValue(v)
	}
	return out
}

// Result holds everything a sweep produced.
type Result struct {
	Header  []string
	Rows    []Row
	Figures []*Figure
}

// Run evaluates the plan. For every combination of outer values it walks the
// facet grid row-major, then color values, then line style values, calling the
// target once per x value. A line with any missing or non-numeric output is
// dropped with a warning; its rows are still recorded.
func Run(ctx context.Context, p *Plan) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	res := &Result{Header: p.Header()}

	xName, xs := p.Role(config.RoleX)
	rowName, rowValues := p.Role(config.RoleRow)
	colName, colValues := p.Role(config.RoleCol)
	colorName, colorValues := p.Role(config.RoleColor)
	styleName, styleValues := p.Role(config.RoleLineStyle)

	for _, outer := range product(p.OuterVars, p.Series) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fig := &Figure{
			Title:  p.Title(outer),
			XLabel: xName,
			YLabel: p.Target.Name,
			Outer:  outer,
			X:      xs,
			Rows:   len(rowValues),
			Cols:   len(colValues),
		}
		assign := maps.Clone(outer)

		for ri, rowValue := range rowValues {
			setRole(assign, rowName, rowValue)
			for ci, colValue := range colValues {
				setRole(assign, colName, colValue)
				facet := &Facet{Row: ri, Col: ci, Title: p.FacetTitle(rowValue, colValue), Legend: ri == 0 && ci == 0}

				for colorIdx, colorValue := range colorValues {
					setRole(assign, colorName, colorValue)
					for styleIdx, styleValue := range styleValues {
						setRole(assign, styleName, styleValue)
						line := &Line{
							Label: p.LineLabel(colorValue, styleValue),
							Color: colorIdx,
							Style: styleIdx,
							Y:     make([]float64, 0, len(xs)),
						}

						var bad []string
						for _, x := range xs {
							assign[xName] = x
							row := p.evaluate(ctx, assign)
							res.Rows = append(res.Rows, row)
							if y, ok := AsFloat(row.Output); ok {
								line.Y = append(line.Y, y)
							} else {
								bad = append(bad, FormatValue(x))
							}
						}

						if len(bad) > 0 {
							logger.Warn("Dropping line with missing or invalid output.",
								"figure", fig.Title, "facet", facet.Title, "line", line.Label, "x", bad)
							continue
						}
						facet.Lines = append(facet.Lines, line)
					}
				}
				fig.Facets = append(fig.Facets, facet)
			}
		}
		res.Figures = append(res.Figures, fig)
	}

	logger.Debug("Sweep finished.", "figures", len(res.Figures), "rows", len(res.Rows))
	return res, nil
}

// evaluate calls the target with the assigned inner and outer values and the
// plan's constants. Target errors become a null output.
func (p *Plan) evaluate(ctx context.Context, assign map[string]cty.Value) Row {
	logger := ctxlog.FromContext(ctx)

	args := make([]cty.Value, len(p.Target.Params))
	for i, param := range p.Target.Params {
		if v, ok := assign[param.Name]; ok {
			args[i] = v
		} else {
			args[i] = p.Constants[param.Name]
		}
	}

	out, err := p.Target.Call(args)
	if err != nil {
		logger.Warn("Target returned an error.", "target", p.Target.Key(), "inputs", p.describeArgs(args), "error", err)
		out = cty.NullVal(cty.DynamicPseudoType)
	}
	logger.Debug("Evaluated.", "inputs", p.describeArgs(args), "output", FormatValue(out))
	return Row{Values: args, Output: out}
}

func (p *Plan) describeArgs(args []cty.Value) string {
	values := make(map[string]cty.Value, len(args))
	names := make([]string, len(args))
	for i, param := range p.Target.Params {
		names[i] = param.Name
		values[param.Name] = args[i]
	}
	return pairs(names, values, ", ")
}

// Header returns the CSV header: parameter names in target order, then the
// output column.
func (p *Plan) Header() []string {
	header := make([]string, 0, len(p.Target.Params)+1)
	for _, param := range p.Target.Params {
		header = append(header, param.Name)
	}
	return append(header, registry.OutputColumn)
}

func setRole(assign map[string]cty.Value, name string, v cty.Value) {
	if name != "" {
		assign[name] = v
	}
}

// product returns every combination of the named series, the last name
// varying fastest. No names yields a single empty combination.
func product(names []string, series map[string][]cty.Value) []map[string]cty.Value {
	combos := []map[string]cty.Value{{}}
	for _, name := range names {
		next := make([]map[string]cty.Value, 0, len(combos)*len(series[name]))
		for _, combo := range combos {
			for _, v := range series[name] {
				c := maps.Clone(combo)
				c[name] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}
