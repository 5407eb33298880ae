package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/specialistvlad/sweepkit/internal/fsutil"
	"github.com/specialistvlad/sweepkit/internal/sweep"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	// DPI converts figure inches to pixels.
	DPI = 100

	titleBand = 28
	minCellW  = 120
	minCellH  = 90
)

// Options sets the figure size in inches.
type Options struct {
	Width  float64
	Height float64
}

// Size returns the figure size in pixels.
func (o Options) Size() (int, int) {
	return int(math.Round(o.Width * DPI)), int(math.Round(o.Height * DPI))
}

// Render draws the figure into a new image.
func Render(fig *sweep.Figure, opts Options) (*image.RGBA, error) {
	width, height := opts.Size()
	cols, rows := max(fig.Cols, 1), max(fig.Rows, 1)
	cellW, cellH := width/cols, (height-titleBand)/rows
	if cellW < minCellW || cellH < minCellH {
		return nil, fmt.Errorf("figure of %dx%d px is too small for a %dx%d facet grid", width, height, rows, cols)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	drawCentered(canvas, fit(fig.Title, width), width/2, titleBand-9, color.Black)

	xs, ticks := xAxis(fig)
	for _, facet := range fig.Facets {
		cell := image.Rect(facet.Col*cellW, titleBand+facet.Row*cellH, (facet.Col+1)*cellW, titleBand+(facet.Row+1)*cellH)
		if !drawable(facet, xs) {
			blankPanel(canvas, cell, facet.Title)
			continue
		}

		img, err := renderFacet(fig, facet, xs, ticks, cellW, cellH)
		if err != nil {
			return nil, fmt.Errorf("failed to render facet %q: %w", facet.Title, err)
		}
		draw.Draw(canvas, cell, img, img.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

// WritePNG renders the figure and encodes it as PNG.
func WritePNG(w io.Writer, fig *sweep.Figure, opts Options) error {
	img, err := Render(fig, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SaveFile writes the figure to path, creating parent directories.
func SaveFile(path string, fig *sweep.Figure, opts Options) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, fig, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// xAxis returns the x coordinates of the figure. Non-numeric x values are
// placed at their index and labeled with ticks.
func xAxis(fig *sweep.Figure) ([]float64, []chart.Tick) {
	if xs, ok := fig.XFloats(); ok {
		return xs, nil
	}

	labels := fig.XLabels()
	xs := make([]float64, len(labels))
	ticks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	return xs, ticks
}

// drawable reports whether go-chart can render the facet: at least one line
// and a non-zero x range.
func drawable(facet *sweep.Facet, xs []float64) bool {
	if len(facet.Lines) == 0 || len(xs) < 2 {
		return false
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return hi > lo
}

func renderFacet(fig *sweep.Figure, facet *sweep.Facet, xs []float64, ticks []chart.Tick, width, height int) (image.Image, error) {
	c := chart.Chart{
		Title:  facet.Title,
		Width:  width,
		Height: height,
		DPI:    DPI,
		XAxis:  chart.XAxis{Name: fig.XLabel, Ticks: ticks},
		YAxis:  chart.YAxis{Name: fig.YLabel, Range: yRange(facet)},
	}

	named := false
	for _, line := range facet.Lines {
		c.Series = append(c.Series, chart.ContinuousSeries{
			Name:    line.Label,
			XValues: xs,
			YValues: line.Y,
			Style: chart.Style{
				StrokeColor:     lineColor(line.Color),
				StrokeWidth:     2,
				StrokeDashArray: lineDash(line.Style),
			},
		})
		named = named || line.Label != ""
	}
	if facet.Legend && named {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// yRange pads a flat facet so its axis has a usable span.
func yRange(facet *sweep.Facet) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, line := range facet.Lines {
		for _, y := range line.Y {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

func blankPanel(dst draw.Image, cell image.Rectangle, title string) {
	border := color.Gray{Y: 200}
	inner := cell.Inset(8)
	for x := inner.Min.X; x < inner.Max.X; x++ {
		dst.Set(x, inner.Min.Y, border)
		dst.Set(x, inner.Max.Y-1, border)
	}
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		dst.Set(inner.Min.X, y, border)
		dst.Set(inner.Max.X-1, y, border)
	}

	center := inner.Min.X + inner.Dx()/2
	if title != "" {
		drawCentered(dst, fit(title, inner.Dx()), center, inner.Min.Y+20, color.Black)
	}
	drawCentered(dst, "no data", center, inner.Min.Y+inner.Dy()/2, border)
}
