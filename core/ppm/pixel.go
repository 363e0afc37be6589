package ppm

import (
	"image/color"
	"math/bits"
)

// Opaque is the alpha byte of every packed pixel.
const Opaque = 0xFF

// Pack encodes one pixel as alpha, blue, green, red from the high byte down,
// the layout expected by little-endian RGBA display surfaces.
func Pack(r, g, b int) uint32 {
	return uint32(Opaque)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Unpack decodes a packed pixel.
func Unpack(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Pixel accumulates the channels of one pixel in red, green, blue order.
type Pixel struct {
	R, G, B int
	set     int
}

// Set fills the next unset channel and reports whether the pixel is complete.
func (p *Pixel) Set(v int) bool {
	switch p.set {
	case 0:
		p.R = v
	case 1:
		p.G = v
	case 2:
		p.B = v
	}
	p.set++
	return p.set == 3
}

// Complete reports whether all three channels are set.
func (p *Pixel) Complete() bool {
	return p.set == 3
}

// Partial reports whether some but not all channels are set.
func (p *Pixel) Partial() bool {
	return p.set > 0 && p.set < 3
}

// Reset clears all channels.
func (p *Pixel) Reset() {
	*p = Pixel{}
}

// Packed encodes the pixel, scaling channels to 8 bits when maxVal exceeds 255.
func (p *Pixel) Packed(maxVal int) uint32 {
	if maxVal <= 255 {
		return Pack(p.R, p.G, p.B)
	}
	return Pack(scale(p.R, maxVal), scale(p.G, maxVal), scale(p.B, maxVal))
}

// scale maps v in 0..maxVal onto 0..255. The product v*255 is taken in 128
// bits so 18-digit channel values cannot overflow.
func scale(v, maxVal int) int {
	if v <= 0 {
		return 0
	}
	if v >= maxVal {
		return 255
	}
	hi, lo := bits.Mul64(uint64(v), 255)
	q, _ := bits.Div64(hi, lo, uint64(maxVal))
	return int(q)
}
