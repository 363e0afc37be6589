// Package validation provides input validation for paths, image dimensions
// and stream signatures, bounding the resources a single decode may consume.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Resource limits (CWE-400).
const (
	// MaxPixels is the largest width*height accepted (64 Mpx, 256 MiB packed).
	MaxPixels = 1 << 26
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInvalidDimension = errors.New("invalid image dimension")
	ErrTooManyPixels    = errors.New("too many pixels")
)

// ValidatePath performs path validation without requiring a base directory.
// It checks length limits and rejects null bytes and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	// Check length
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	// Check for control characters
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateDimensions checks that width and height are positive and that
// their product does not exceed maxPixels. The product is never computed
// when it could overflow.
func ValidateDimensions(width, height, maxPixels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > maxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrTooManyPixels, width, height, maxPixels)
	}
	return nil
}

// FileType represents a detected stream type.
type FileType string

const (
	// Compression wrappers
	FileTypeGzip FileType = "gzip"
	FileTypeXZ   FileType = "xz"

	// Netpbm family
	FileTypePlainPPM FileType = "ppm-plain"
	FileTypeRawPPM   FileType = "ppm-raw"
	FileTypeNetpbm   FileType = "netpbm"

	// Unknown
	FileTypeUnknown FileType = "unknown"
)

// magicBytes defines magic byte signatures for stream type detection.
var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeGzip, []byte{0x1f, 0x8b}},
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FileTypePlainPPM, []byte("P3")},
	{FileTypeRawPPM, []byte("P6")},
}

// DetectFileType detects the stream type from its leading bytes.
func DetectFileType(buf []byte) FileType {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType
		}
	}
	if len(buf) >= 2 && buf[0] == 'P' && buf[1] >= '1' && buf[1] <= '7' {
		return FileTypeNetpbm
	}
	return FileTypeUnknown
}

// ExportExtensions lists the file extensions an image may be exported to.
var ExportExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp"}

// ValidateExportPath checks an export destination path and its extension.
func ValidateExportPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range ExportExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported export extension %q (want one of %s)", ext, strings.Join(ExportExtensions, ", "))
}
