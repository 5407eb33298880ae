package plot

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette holds one color per allowed color value.
var Palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
	drawing.ColorFromHex("393b79"),
	drawing.ColorFromHex("637939"),
	drawing.ColorFromHex("8c6d31"),
	drawing.ColorFromHex("843c39"),
	drawing.ColorFromHex("7b4173"),
	drawing.ColorFromHex("3182bd"),
}

// Dashes holds one stroke dash pattern per allowed line style value:
// solid, dashed, dotted and dash-dot.
var Dashes = [][]float64{
	nil,
	{8, 4},
	{2, 3},
	{8, 3, 2, 3},
}

func lineColor(i int) drawing.Color {
	return Palette[i%len(Palette)]
}

func lineDash(i int) []float64 {
	return Dashes[i%len(Dashes)]
}
