package display

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// DefaultResizeInterval is how often Keyboard polls the surface size.
const DefaultResizeInterval = 250 * time.Millisecond

// SizeFunc reports the current surface size in cells.
type SizeFunc func() (cols, rows int, err error)

// Keyboard is an EventSource fed by key presses, interrupt signals and
// surface size changes.
type Keyboard struct {
	events  chan Event
	done    chan struct{}
	signals chan os.Signal

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewKeyboard starts reading keys from in and polling size every interval.
// A nil size disables resize detection. Reading from in may stay blocked
// after Close until the process exits.
func NewKeyboard(in io.Reader, size SizeFunc, interval time.Duration) *Keyboard {
	k := &Keyboard{
		events:  make(chan Event, 8),
		done:    make(chan struct{}),
		signals: make(chan os.Signal, 1),
	}
	signal.Notify(k.signals, os.Interrupt, syscall.SIGTERM)

	go k.readKeys(in)

	k.wg.Add(1)
	go k.watch(size, interval)
	return k
}

// Events returns the event channel. It is never closed.
func (k *Keyboard) Events() <-chan Event {
	return k.events
}

// Close stops signal handling and size polling.
func (k *Keyboard) Close() error {
	k.closeOnce.Do(func() {
		signal.Stop(k.signals)
		close(k.done)
		k.wg.Wait()
	})
	return nil
}

func (k *Keyboard) send(ev Event) bool {
	select {
	case k.events <- ev:
		return true
	case <-k.done:
		return false
	}
}

func (k *Keyboard) readKeys(in io.Reader) {
	if in == nil {
		return
	}
	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if ev, ok := keyEvent(buf[:n]); ok && !k.send(ev) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// keyEvent maps one read from the keyboard to an event. A lone Escape quits;
// longer sequences starting with Escape are cursor or function keys.
func keyEvent(b []byte) (Event, bool) {
	switch {
	case len(b) == 1 && b[0] == keyEscape:
		return Event{Kind: Quit}, true
	case b[0] == keyEscape:
		return Event{}, false
	}
	for _, c := range b {
		switch c {
		case 'q', 'Q', keyCtrlC:
			return Event{Kind: Quit}, true
		case 'r', 'R':
			return Event{Kind: Redraw}, true
		}
	}
	return Event{}, false
}

func (k *Keyboard) watch(size SizeFunc, interval time.Duration) {
	defer k.wg.Done()

	var tick <-chan time.Time
	if size != nil {
		if interval <= 0 {
			interval = DefaultResizeInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	lastCols, lastRows := -1, -1
	if size != nil {
		if c, r, err := size(); err == nil {
			lastCols, lastRows = c, r
		}
	}

	for {
		select {
		case <-k.done:
			return
		case <-k.signals:
			if !k.send(Event{Kind: Quit}) {
				return
			}
		case <-tick:
			cols, rows, err := size()
			if err != nil || (cols == lastCols && rows == lastRows) {
				continue
			}
			lastCols, lastRows = cols, rows
			if !k.send(Event{Kind: Resize, Cols: cols, Rows: rows}) {
				return
			}
		}
	}
}
