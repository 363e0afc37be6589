package display

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"
	"github.com/FocuswithJustin/ppmviewer/internal/cache"
	"github.com/FocuswithJustin/ppmviewer/internal/logging"
)

type frameKey struct {
	cols, rows int
}

// Session shows one image on one surface.
type Session struct {
	id      string
	img     image.Image
	surface Surface
	events  EventSource
	frames  *cache.TTLCache[frameKey, []byte]

	closeOnce sync.Once
	closeErr  error
}

// New creates a session. The session borrows img and takes ownership of
// surface and events, which are closed by Close.
func New(cfg Config, img image.Image, surface Surface, events EventSource) (*Session, error) {
	switch {
	case img == nil:
		return nil, apperrors.NewValidation("image", "must not be nil")
	case surface == nil:
		return nil, apperrors.NewValidation("surface", "must not be nil")
	case events == nil:
		return nil, apperrors.NewValidation("events", "must not be nil")
	}

	return &Session{
		id:      uuid.NewString(),
		img:     img,
		surface: surface,
		events:  events,
		frames:  cache.New[frameKey, []byte](cfg.FrameCacheTTL, cfg.FrameCacheSize),
	}, nil
}

// ID returns the session identifier used in log records.
func (s *Session) ID() string {
	return s.id
}

// Run presents the image and then handles events until a Quit event,
// the event channel closing, or ctx being cancelled. Cancellation is
// returned as ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	ctx = logging.WithSessionID(ctx, s.id)
	b := s.img.Bounds()
	logging.InfoContext(ctx, "display session started", "width", b.Dx(), "height", b.Dy())

	if err := s.present(ctx); err != nil {
		return err
	}

	events := s.events.Events()
	for {
		select {
		case <-ctx.Done():
			logging.DisplayEvent(ctx, "cancelled")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				logging.DisplayEvent(ctx, "events closed")
				return nil
			}
			logging.DisplayEvent(ctx, ev.Kind.String(), "cols", ev.Cols, "rows", ev.Rows)
			switch ev.Kind {
			case Quit:
				return nil
			case Resize, Redraw:
				if err := s.present(ctx); err != nil {
					return err
				}
			}
		}
	}
}

func (s *Session) present(ctx context.Context) error {
	cols, rows, err := s.surface.Size()
	if err != nil {
		return apperrors.Wrap(err, "failed to query surface size")
	}
	if cols <= 0 || rows <= 0 {
		logging.WarnContext(ctx, "surface has no cells, skipping frame", "cols", cols, "rows", rows)
		return nil
	}

	key := frameKey{cols: cols, rows: rows}
	frame, ok := s.frames.Get(key)
	if !ok {
		frame = Render(s.img, cols, rows)
		s.frames.Set(key, frame)
	}
	logging.DebugContext(ctx, "presenting frame", "cols", cols, "rows", rows, "cached", ok, "bytes", len(frame))

	if err := s.surface.Present(frame); err != nil {
		logging.ErrorContext(ctx, "present failed", "cols", cols, "rows", rows, "error", err)
		return apperrors.Wrapf(err, "failed to present %dx%d frame", cols, rows)
	}
	return nil
}

// Close stops the event source and releases the surface. It is safe to
// call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.frames.Invalidate()
		s.closeErr = errors.Join(s.events.Close(), s.surface.Close())
	})
	return s.closeErr
}
