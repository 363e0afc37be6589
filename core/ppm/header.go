package ppm

import "fmt"

// Header is the decoded PPM header.
type Header struct {
	IsASCII bool `json:"is_ascii"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	MaxVal  int  `json:"max_val"`
}

// String renders the header the way it appears in a P3 file.
func (h Header) String() string {
	magic := "P6"
	if h.IsASCII {
		magic = "P3"
	}
	return fmt.Sprintf("%s %dx%d max=%d", magic, h.Width, h.Height, h.MaxVal)
}

// Pixels returns the number of pixels the header declares.
func (h Header) Pixels() int {
	return h.Width * h.Height
}

// headerState tracks which header field the next token fills.
type headerState int

const (
	awaitingWidth headerState = iota
	awaitingHeight
	awaitingMaxVal
	headerDone
)

func (s headerState) String() string {
	switch s {
	case awaitingWidth:
		return "width"
	case awaitingHeight:
		return "height"
	case awaitingMaxVal:
		return "max value"
	default:
		return "done"
	}
}

// assign stores v in the field selected by the current state and advances.
// Zero values never fill a field.
func (s *headerState) assign(h *Header, v int) {
	if v == 0 {
		return
	}
	switch *s {
	case awaitingWidth:
		h.Width = v
	case awaitingHeight:
		h.Height = v
	case awaitingMaxVal:
		h.MaxVal = v
	default:
		return
	}
	*s++
}
