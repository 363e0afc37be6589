package ppm

import apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"

// Failure kinds reported by the decoder. Every error returned by this
// package matches exactly one of them with errors.Is, as well as the broad
// class from core/errors it belongs to.
var (
	// ErrCannotOpenFile is returned when the input stream cannot be opened or read.
	ErrCannotOpenFile = apperrors.NewKind(apperrors.ErrIO, "cannot open file")
	// ErrInvalidMagicNumber is returned when the stream does not start with 'P'.
	ErrInvalidMagicNumber = apperrors.NewKind(apperrors.ErrInvalidInput, "invalid magic number")
	// ErrUnsupportedFormat is returned for any variant other than ASCII P3.
	ErrUnsupportedFormat = apperrors.NewKind(apperrors.ErrUnsupported, "unsupported format")
	// ErrMalformedHeader is returned when the stream ends before width,
	// height and max value are all known.
	ErrMalformedHeader = apperrors.NewKind(apperrors.ErrInvalidInput, "malformed header")
	// ErrTokenOverflow is returned when a digit run exceeds the token limit.
	ErrTokenOverflow = apperrors.NewKind(apperrors.ErrInvalidInput, "token overflow")
	// ErrImageTooLarge is returned when width*height exceeds the pixel limit.
	ErrImageTooLarge = apperrors.NewKind(apperrors.ErrInvalidInput, "image too large")
	// ErrPixelCountMismatch is returned in strict mode when the stream does
	// not carry exactly width*height complete pixels.
	ErrPixelCountMismatch = apperrors.NewKind(apperrors.ErrInvalidInput, "pixel count mismatch")
)

// parseError reports a decode failure of the given kind at byte off.
// Pass -1 when no single offset applies.
func parseError(off int64, kind error, msg string) error {
	e := apperrors.NewParse("PPM", off, msg)
	e.Err = kind
	return e
}

func unsupportedError(feature, reason string) error {
	e := apperrors.NewUnsupported(feature, reason)
	e.Err = ErrUnsupportedFormat
	return e
}
