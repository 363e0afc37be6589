package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "path", Message: "must not be empty"},
			wantMsg:  "validation failed for path: must not be empty",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid format"},
			wantMsg:  "validation failed: invalid format",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("too many pixels")
		err := &ValidationError{Field: "dimensions", Message: "image too large", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "open", Path: "/test/image.ppm", Err: baseErr},
			wantMsg: "failed to open /test/image.ppm: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "read", Err: baseErr},
			wantMsg: "failed to read: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}

	t.Run("nil underlying error falls back to ErrIO", func(t *testing.T) {
		err := &IOError{Operation: "read"}
		if !errors.Is(err, ErrIO) {
			t.Errorf("IOError without Err should match ErrIO")
		}
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with offset",
			err:      &ParseError{Format: "PPM", Offset: 12, Message: "unexpected end of stream"},
			wantMsg:  "failed to parse PPM at byte 12: unexpected end of stream",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without offset",
			err:      &ParseError{Format: "PPM", Offset: -1, Message: "pixel count mismatch"},
			wantMsg:  "failed to parse PPM: pixel count mismatch",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("token too long")
		err := &ParseError{Format: "PPM", Offset: 3, Message: "overflow", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnsupportedError(t *testing.T) {
	tests := []struct {
		name     string
		err      *UnsupportedError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with reason",
			err:      &UnsupportedError{Feature: "PPM variant P6", Reason: "binary pixel data is not supported"},
			wantMsg:  "unsupported PPM variant P6: binary pixel data is not supported",
			wantBase: ErrUnsupported,
		},
		{
			name:     "without reason",
			err:      &UnsupportedError{Feature: "format"},
			wantMsg:  "unsupported format",
			wantBase: ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("path", "empty")
		if err.Field != "path" || err.Message != "empty" {
			t.Errorf("NewValidation() = %+v, want Field=path, Message=empty", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("no such file")
		err := NewIO("open", "/tmp/test.ppm", baseErr)
		if err.Operation != "open" || err.Path != "/tmp/test.ppm" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})

	t.Run("NewParse", func(t *testing.T) {
		err := NewParse("PPM", 7, "bad header")
		if err.Format != "PPM" || err.Offset != 7 || err.Message != "bad header" {
			t.Errorf("NewParse() = %+v, unexpected values", err)
		}
	})

	t.Run("NewUnsupported", func(t *testing.T) {
		err := NewUnsupported("codec", "not compiled in")
		if err.Feature != "codec" || err.Reason != "not compiled in" {
			t.Errorf("NewUnsupported() = %+v, unexpected values", err)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatting", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrapf(baseErr, "failed to process %s", "image.ppm")
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrapf() error does not unwrap to base error")
		}
		wantMsg := "failed to process image.ppm: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrapf(nil, "context %s", "test"); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})
}

func TestWrapPreservesParseError(t *testing.T) {
	err := Wrap(&ParseError{Format: "PPM", Offset: 4, Message: "x"}, "decode")
	var pErr *ParseError
	if !errors.As(err, &pErr) {
		t.Fatal("errors.As() failed to match ParseError")
	}
	if pErr.Offset != 4 {
		t.Errorf("pErr.Offset = %d, want %d", pErr.Offset, 4)
	}
}

func TestNewKind(t *testing.T) {
	kind := NewKind(ErrInvalidInput, "token overflow")
	if kind.Error() != "token overflow" {
		t.Errorf("Error() = %q, want %q", kind.Error(), "token overflow")
	}

	wrapped := &ParseError{Format: "PPM", Offset: 9, Message: "too long", Err: kind}
	if !errors.Is(wrapped, kind) {
		t.Error("ParseError should match its kind")
	}
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Error("ParseError should match the class of its kind")
	}
	if errors.Is(wrapped, ErrUnsupported) {
		t.Error("ParseError should not match an unrelated class")
	}

	other := NewKind(ErrInvalidInput, "token overflow")
	if errors.Is(kind, other) {
		t.Error("distinct kinds with equal messages should not match")
	}
}
