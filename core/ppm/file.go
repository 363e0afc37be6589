package ppm

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"
	"github.com/FocuswithJustin/ppmviewer/internal/validation"
)

// Injectable functions for testing
var (
	osOpen        = os.Open
	gzipNewReader = gzip.NewReader
	xzNewReader   = xz.NewReader
)

// sniffLen is the number of leading bytes inspected for a compression wrapper.
const sniffLen = 6

// DecodeFile opens path and decodes it. Gzip and xz compressed files are
// decompressed transparently. The file is closed before DecodeFile returns.
func DecodeFile(path string, opts *Options) (*Image, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, openError(path, err)
	}

	f, err := osOpen(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	var src io.Reader = f
	teed := opts != nil && opts.Tee != nil
	if teed {
		src = io.TeeReader(f, opts.Tee)
	}

	r, closeFn, err := OpenStream(src)
	if err != nil {
		return nil, openError(path, err)
	}
	defer closeFn()

	img, err := DecodeWithOptions(r, opts)
	if err != nil {
		return nil, err
	}
	if teed {
		// Feed the unread tail to Tee so it sees the whole file.
		if _, err := io.Copy(io.Discard, src); err != nil {
			return nil, apperrors.NewIO("read", path, err)
		}
	}
	return img, nil
}

// OpenStream wraps r in a decompressor when its leading bytes carry a gzip
// or xz signature. The returned close function releases the decompressor
// and never closes r itself.
func OpenStream(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, nil, err
	}

	nop := func() error { return nil }
	switch validation.DetectFileType(magic) {
	case validation.FileTypeGzip:
		gz, err := gzipNewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return bufio.NewReader(gz), gz.Close, nil
	case validation.FileTypeXZ:
		xr, err := xzNewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return bufio.NewReader(xr), nop, nil
	default:
		return br, nop, nil
	}
}

func openError(path string, err error) error {
	return apperrors.NewIO("open", path, fmt.Errorf("%w: %w", ErrCannotOpenFile, err))
}
