package display

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		wantW      int
		wantH      int
	}{
		{"small image keeps size", 4, 4, 10, 10, 4, 4},
		{"wide image scales to width", 40, 20, 10, 5, 10, 5},
		{"tall image scales to height", 20, 40, 30, 10, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(solid(tt.w, tt.h, color.NRGBA{A: 0xFF}), tt.cols, tt.rows).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Fit() = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderCellGrid(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols       int
		rows       int
		wantCells  int
		wantBreaks int
	}{
		{"even height", 4, 4, 10, 10, 8, 1},
		{"odd height", 3, 3, 10, 10, 6, 1},
		{"downscaled", 40, 20, 10, 5, 30, 2},
		{"single row", 2, 1, 10, 10, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := string(Render(solid(tt.w, tt.h, color.NRGBA{R: 1, A: 0xFF}), tt.cols, tt.rows))
			if !strings.HasPrefix(frame, frameStart) {
				t.Error("frame should start by clearing the screen")
			}
			if got := strings.Count(frame, halfBlock); got != tt.wantCells {
				t.Errorf("cells = %d, want %d", got, tt.wantCells)
			}
			if got := strings.Count(frame, rowEnd); got != tt.wantBreaks {
				t.Errorf("line breaks = %d, want %d", got, tt.wantBreaks)
			}
		})
	}
}

func TestRenderColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 0xFF})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 0xFF})

	frame := string(Render(img, 10, 10))
	if !strings.Contains(frame, "255;0;0") {
		t.Errorf("frame %q lacks the red foreground", frame)
	}
	if !strings.Contains(frame, "0;0;255") {
		t.Errorf("frame %q lacks the blue background", frame)
	}
	if !strings.Contains(frame, "\x1b[") {
		t.Error("frame should contain color escapes")
	}
}

func TestRenderFillsSurfaceWithoutScrolling(t *testing.T) {
	const cols, rows = 4, 10
	frame := string(Render(solid(4, 20, color.NRGBA{G: 9, A: 0xFF}), cols, rows))

	if got := strings.Count(frame, halfBlock); got != cols*rows {
		t.Fatalf("cells = %d, want %d", got, cols*rows)
	}
	if got := strings.Count(frame, "\n"); got > rows-1 {
		t.Errorf("frame has %d line feeds, a %d row surface scrolls after %d", got, rows, rows-1)
	}
	if strings.HasSuffix(frame, rowEnd) {
		t.Error("frame should not end with a line break")
	}
}

func TestRenderEmpty(t *testing.T) {
	img := solid(2, 2, color.NRGBA{A: 0xFF})

	for _, size := range [][2]int{{0, 10}, {10, 0}} {
		if got := Render(img, size[0], size[1]); !bytes.Equal(got, []byte(frameStart)) {
			t.Errorf("Render(%dx%d) = %q, want only the clear sequence", size[0], size[1], got)
		}
	}
	if got := Render(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 10, 10); !bytes.Equal(got, []byte(frameStart)) {
		t.Errorf("Render(empty image) = %q, want only the clear sequence", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	img := solid(7, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 0xFF})
	if !bytes.Equal(Render(img, 4, 2), Render(img, 4, 2)) {
		t.Error("Render() should be deterministic")
	}
}
