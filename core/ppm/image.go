package ppm

import (
	"image"
	"image/color"
)

// Stats counts what the pixel pass consumed.
type Stats struct {
	Pixels   int `json:"pixels"`   // complete pixels written to the buffer
	Channels int `json:"channels"` // channel tokens consumed
	Dropped  int `json:"dropped"`  // complete pixels past the end of the buffer
}

// Image is a decoded P3 image. Pix holds Width*Height packed pixels in
// row-major order. Image implements image.Image as a view over Pix, so
// consumers that accept an image.Image borrow the buffer without copying it.
type Image struct {
	Header Header
	Pix    []uint32
	Stats  Stats
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Header.Width, m.Header.Height)
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return m.RGBAAt(x, y)
}

// RGBAAt returns the color at (x, y), or transparent black outside the bounds.
func (m *Image) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	return Unpack(m.Pix[y*m.Header.Width+x])
}

// PackedAt returns the packed pixel at (x, y), or 0 outside the bounds.
func (m *Image) PackedAt(x, y int) uint32 {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return 0
	}
	return m.Pix[y*m.Header.Width+x]
}

// Stride is the length of one row of Pix.
func (m *Image) Stride() int {
	return m.Header.Width
}
