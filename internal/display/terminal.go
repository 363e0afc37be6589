package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[?25l"
	leaveAltScreen = "\x1b[0m\x1b[?25h\x1b[?1049l"
)

// ErrNotTerminal is returned when the output is not a terminal.
var ErrNotTerminal = apperrors.NewKind(apperrors.ErrUnsupported, "output is not a terminal")

// Terminal functions, replaceable in tests.
var (
	isTerminal = term.IsTerminal
	makeRaw    = term.MakeRaw
	restore    = term.Restore
	getSize    = term.GetSize
)

// fdFile is the subset of *os.File the terminal needs.
type fdFile interface {
	io.Writer
	Fd() uintptr
}

// Terminal is a Surface drawing on a TTY's alternate screen.
type Terminal struct {
	inFd  int
	out   fdFile
	state *term.State

	mu     sync.Mutex
	closed bool
}

// NewTerminal puts in into raw mode and switches out to the alternate
// screen. Close restores both.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	return newTerminal(in, out)
}

func newTerminal(in, out fdFile) (*Terminal, error) {
	outFd := int(out.Fd())
	if !isTerminal(outFd) {
		return nil, ErrNotTerminal
	}

	inFd := int(in.Fd())
	state, err := makeRaw(inFd)
	if err != nil {
		return nil, apperrors.NewIO("set raw mode", "", err)
	}

	t := &Terminal{inFd: inFd, out: out, state: state}
	if _, err := io.WriteString(out, enterAltScreen); err != nil {
		_ = restore(inFd, state)
		return nil, apperrors.NewIO("write", "", err)
	}
	return t, nil
}

// Size returns the terminal size in cells.
func (t *Terminal) Size() (int, int, error) {
	cols, rows, err := getSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return cols, rows, nil
}

// Present writes frame to the terminal.
func (t *Terminal) Present(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return apperrors.NewIO("present", "", os.ErrClosed)
	}
	if _, err := t.out.Write(frame); err != nil {
		return apperrors.NewIO("present", "", err)
	}
	return nil
}

// Close leaves the alternate screen and restores the input mode.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	_, werr := io.WriteString(t.out, leaveAltScreen)
	rerr := restore(t.inFd, t.state)
	if werr != nil {
		return apperrors.NewIO("write", "", werr)
	}
	if rerr != nil {
		return apperrors.NewIO("restore terminal", "", rerr)
	}
	return nil
}
