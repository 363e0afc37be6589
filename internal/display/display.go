// Package display presents decoded images on a terminal.
//
// A Session owns one Surface and one EventSource. It renders the image
// into the surface's cell grid, presents the frame and re-presents on
// resize or redraw until a quit event arrives or its context ends.
package display

import "time"

// EventKind identifies what happened on an EventSource.
type EventKind int

const (
	// Quit ends the session.
	Quit EventKind = iota
	// Resize reports a new surface size.
	Resize
	// Redraw asks for the current frame to be presented again.
	Redraw
)

func (k EventKind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Resize:
		return "resize"
	case Redraw:
		return "redraw"
	default:
		return "unknown"
	}
}

// Event is delivered by an EventSource.
type Event struct {
	Kind EventKind
	// Cols and Rows are set for Resize events.
	Cols, Rows int
}

// Surface is the target frames are presented to.
type Surface interface {
	// Size returns the surface size in character cells.
	Size() (cols, rows int, err error)
	// Present replaces the visible content with frame.
	Present(frame []byte) error
	Close() error
}

// EventSource delivers user and system events to a session.
type EventSource interface {
	Events() <-chan Event
	Close() error
}

// Config holds session settings.
type Config struct {
	// FrameCacheTTL bounds how long a rendered frame is reused. Zero keeps
	// frames until the session ends.
	FrameCacheTTL time.Duration
	// FrameCacheSize is the number of surface sizes whose frames are kept.
	FrameCacheSize int
}

// DefaultConfig returns the settings used by the command line viewer.
func DefaultConfig() Config {
	return Config{
		FrameCacheTTL:  time.Minute,
		FrameCacheSize: 4,
	}
}
