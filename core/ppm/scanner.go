package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"
)

// scanner splits a P3 stream into whitespace-terminated digit tokens.
// Only ' ' and '\n' terminate a token; '#' starts a comment running through
// the next '\n'; digits accumulate; every other byte is ignored.
type scanner struct {
	r      *bufio.Reader
	off    int64
	tok    []byte
	maxTok int
}

func newScanner(r io.Reader, maxTok int) *scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &scanner{
		r:      br,
		tok:    make([]byte, 0, maxTok),
		maxTok: maxTok,
	}
}

// readByte reads one byte, converting read failures into ErrCannotOpenFile.
// io.EOF is returned unchanged.
func (s *scanner) readByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, apperrors.NewIO(fmt.Sprintf("read byte %d", s.off), "", fmt.Errorf("%w: %w", ErrCannotOpenFile, err))
	}
	s.off++
	return c, nil
}

// next returns the value of the next terminated token. ok is false for an
// empty token (two terminators in a row). At end of stream it returns
// io.EOF and any unterminated token is discarded.
func (s *scanner) next() (v int, ok bool, err error) {
	for {
		c, err := s.readByte()
		if err != nil {
			s.tok = s.tok[:0]
			return 0, false, err
		}

		switch {
		case c == '#':
			if err := s.skipComment(); err != nil {
				s.tok = s.tok[:0]
				return 0, false, err
			}
		case c == ' ' || c == '\n':
			if len(s.tok) == 0 {
				return 0, false, nil
			}
			v, err := strconv.Atoi(string(s.tok))
			s.tok = s.tok[:0]
			if err != nil {
				return 0, false, s.overflow()
			}
			return v, true, nil
		case c >= '0' && c <= '9':
			if len(s.tok) >= s.maxTok {
				return 0, false, s.overflow()
			}
			s.tok = append(s.tok, c)
		}
	}
}

// skipComment discards bytes through the next newline.
func (s *scanner) skipComment() error {
	for {
		c, err := s.readByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

func (s *scanner) overflow() error {
	return parseError(s.off, ErrTokenOverflow, fmt.Sprintf("digit token longer than %d characters", s.maxTok))
}
