package plot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// drawCentered writes s horizontally centered on x with its baseline at y.
func drawCentered(dst draw.Image, s string, x, y int, c color.Color) {
	width := font.MeasureString(face, s).Ceil()
	drawText(dst, s, x-width/2, y, c)
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// fit shortens s so it renders within width pixels. The face is monospaced,
// so the budget is counted in runes.
func fit(s string, width int) string {
	n := width / face.Advance
	runes := []rune(s)
	if n <= 3 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
