// Package ppm decodes ASCII Portable Pixmap (P3) images into packed
// 32-bit pixel buffers.
//
// The decoder is a single forward pass over the stream. The header is read
// as the magic "P3" followed by width, height and max value tokens; the rest
// of the stream supplies red, green, blue channel tokens in row-major order.
// Binary P6 and the grayscale variants are recognised only to be rejected.
package ppm

import (
	"errors"
	"fmt"
	"io"

	"github.com/FocuswithJustin/ppmviewer/internal/validation"
)

const (
	// DefaultMaxTokenLength is the longest digit run accepted in one token.
	DefaultMaxTokenLength = 10
	// TokenLengthLimit is the largest accepted MaxTokenLength. Longer
	// tokens could overflow int64.
	TokenLengthLimit = 18
)

// Options controls decoding.
type Options struct {
	// Strict fails the decode unless the stream carries exactly
	// width*height complete pixels.
	Strict bool
	// MaxTokenLength bounds the digit token buffer. Values outside
	// 1..18 fall back to DefaultMaxTokenLength.
	MaxTokenLength int
	// MaxPixels bounds width*height. Zero means validation.MaxPixels.
	MaxPixels int
	// Tee, when set, receives every raw byte DecodeFile reads from disk,
	// including any bytes left after the pixel data.
	Tee io.Writer
}

// DefaultOptions returns the lenient decoding options.
func DefaultOptions() *Options {
	return &Options{
		MaxTokenLength: DefaultMaxTokenLength,
		MaxPixels:      validation.MaxPixels,
	}
}

func (o *Options) tokenLimit() int {
	if o == nil || o.MaxTokenLength < 1 || o.MaxTokenLength > TokenLengthLimit {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}

func (o *Options) pixelLimit() int {
	if o == nil || o.MaxPixels <= 0 {
		return validation.MaxPixels
	}
	return o.MaxPixels
}

// Decode reads a P3 image from r with the default options.
func Decode(r io.Reader) (*Image, error) {
	return DecodeWithOptions(r, DefaultOptions())
}

// DecodeHeader reads only the header of a P3 image.
func DecodeHeader(r io.Reader) (Header, error) {
	d := &decoder{s: newScanner(r, DefaultMaxTokenLength)}
	if err := d.readHeader(); err != nil {
		return Header{}, err
	}
	return d.h, nil
}

// DecodeWithOptions reads a P3 image from r.
func DecodeWithOptions(r io.Reader, opts *Options) (*Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	d := &decoder{
		s:    newScanner(r, opts.tokenLimit()),
		opts: opts,
	}
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	if err := validation.ValidateDimensions(d.h.Width, d.h.Height, opts.pixelLimit()); err != nil {
		return nil, parseError(d.s.off, fmt.Errorf("%w: %w", ErrImageTooLarge, err), err.Error())
	}
	return d.readPixels()
}

type decoder struct {
	s    *scanner
	opts *Options
	h    Header
}

func (d *decoder) readHeader() error {
	c, err := d.s.readByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return d.headerError(ErrInvalidMagicNumber, "empty stream")
		}
		return err
	}
	if c != 'P' {
		return d.headerError(ErrInvalidMagicNumber, fmt.Sprintf("expected 'P', found %q", c))
	}

	c, err = d.s.readByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return d.headerError(ErrMalformedHeader, "stream ends after magic prefix")
		}
		return err
	}
	switch c {
	case '3':
		d.h.IsASCII = true
	case '6':
		return unsupportedError("PPM variant P6", "binary pixel data is not supported")
	default:
		return unsupportedError(fmt.Sprintf("netpbm variant P%c", c), "only ASCII PPM (P3) is supported")
	}

	state := awaitingWidth
	for state != headerDone {
		v, ok, err := d.s.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return d.headerError(ErrMalformedHeader, fmt.Sprintf("stream ends while reading %s", state))
			}
			return err
		}
		if ok {
			state.assign(&d.h, v)
		}
	}
	return nil
}

func (d *decoder) headerError(kind error, msg string) error {
	return parseError(d.s.off, kind, msg)
}

func (d *decoder) readPixels() (*Image, error) {
	img := &Image{
		Header: d.h,
		Pix:    make([]uint32, d.h.Pixels()),
	}

	var p Pixel
	for {
		v, ok, err := d.s.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if !ok {
			continue
		}

		img.Stats.Channels++
		if !p.Set(min(v, d.h.MaxVal)) {
			continue
		}
		if img.Stats.Pixels < len(img.Pix) {
			img.Pix[img.Stats.Pixels] = p.Packed(d.h.MaxVal)
			img.Stats.Pixels++
		} else {
			img.Stats.Dropped++
		}
		p.Reset()
	}

	if d.opts.Strict && (img.Stats.Pixels != len(img.Pix) || img.Stats.Dropped > 0 || p.Partial()) {
		return nil, parseError(-1, ErrPixelCountMismatch,
			fmt.Sprintf("header declares %d pixels, stream carries %d complete pixels and %d trailing channels",
				len(img.Pix), img.Stats.Pixels+img.Stats.Dropped, img.Stats.Channels%3))
	}
	return img, nil
}
