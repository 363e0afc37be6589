package display

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	fcolor "github.com/fatih/color"
)

const (
	halfBlock = "▀"

	// Home the cursor and clear the screen before drawing.
	frameStart = "\x1b[H\x1b[2J"
	rowEnd     = "\r\n"
)

// Fit scales img to fit a grid of cols by rows cells, two image rows per
// cell, keeping the aspect ratio. Images already small enough keep their size.
func Fit(img image.Image, cols, rows int) *image.NRGBA {
	return imaging.Fit(img, cols, rows*2, imaging.NearestNeighbor)
}

// Render draws img into a frame for a cols by rows cell grid.
// Each cell is an upper half block whose foreground is the upper pixel and
// whose background is the lower one.
func Render(img image.Image, cols, rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString(frameStart)
	if cols <= 0 || rows <= 0 || img.Bounds().Empty() {
		return buf.Bytes()
	}

	fitted := Fit(img, cols, rows)
	b := fitted.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		// Rows are separated, not terminated, so a full frame never scrolls.
		if y > b.Min.Y {
			buf.WriteString(rowEnd)
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := fitted.NRGBAAt(x, y)
			bottom := color.NRGBA{A: 0xFF}
			if y+1 < b.Max.Y {
				bottom = fitted.NRGBAAt(x, y+1)
			}
			buf.WriteString(cell(top, bottom))
		}
	}
	return buf.Bytes()
}

func cell(top, bottom color.NRGBA) string {
	c := fcolor.RGB(int(top.R), int(top.G), int(top.B)).
		AddBgRGB(int(bottom.R), int(bottom.G), int(bottom.B))
	// Frames go to the surface, not stdout, so ignore NoColor.
	c.EnableColor()
	return c.Sprint(halfBlock)
}
