package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		w, h     int
		cols     int
		expLines int
		expCols  int
	}{
		{200, 100, 40, 10, 40}, // 20 pixel rows
		{200, 150, 40, 15, 40}, // 30 pixel rows
		{10, 10, 40, 5, 10},    // never upscales
		{100, 1, 20, 1, 20},    // at least one line
	}

	for _, tt := range tests {
		out := Render(solidImage(tt.w, tt.h, color.White), tt.cols)
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if len(lines) != tt.expLines {
			t.Errorf("Render(%dx%d, %d) has %d lines, expected %d", tt.w, tt.h, tt.cols, len(lines), tt.expLines)
			continue
		}
		if n := strings.Count(lines[0], halfBlock); n != tt.expCols {
			t.Errorf("Render(%dx%d, %d) has %d columns, expected %d", tt.w, tt.h, tt.cols, n, tt.expCols)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := Render(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10); out != "" {
		t.Errorf("expected empty output for empty image, got %q", out)
	}
	if out := Render(solidImage(4, 4, color.Black), 0); out != "" {
		t.Errorf("expected empty output for zero columns, got %q", out)
	}
}

func TestFitColumns(t *testing.T) {
	img := solidImage(400, 300, color.White)
	tests := []struct {
		width, height int
		expected      int
	}{
		{80, 0, 80},   // unknown height
		{80, 100, 80}, // width bound
		{200, 30, 80}, // 60 pixel rows at 4:3
	}

	for _, tt := range tests {
		if got := fitColumns(img, tt.width, tt.height); got != tt.expected {
			t.Errorf("fitColumns(%d, %d) = %d, expected %d", tt.width, tt.height, got, tt.expected)
		}
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(color.RGBA{R: 0, G: 191, B: 191, A: 255}); got != "#00bfbf" {
		t.Errorf("hexColor = %q, expected #00bfbf", got)
	}
}

func TestViewerQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range keys {
		v := NewViewer(solidImage(40, 30, color.White), "P^δ")
		_, cmd := v.Update(key)
		if cmd == nil {
			t.Errorf("key %q: expected quit command", key.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q: expected tea.QuitMsg", key.String())
		}
		if v.View() != "" {
			t.Errorf("key %q: view should be empty after quitting", key.String())
		}
	}
}

func TestViewerResize(t *testing.T) {
	v := NewViewer(solidImage(400, 300, color.White), "P^δ")
	if _, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Errorf("unexpected command for unbound key")
	}

	v.Update(tea.WindowSizeMsg{Width: 200, Height: 32})
	view := v.View()
	if !strings.Contains(view, "P^δ") || !strings.Contains(view, "q / esc") {
		t.Errorf("view is missing the title or help line")
	}
	// 30 lines remain for the image, 60 pixel rows at 4:3 is 80 columns
	if n := strings.Count(view, halfBlock); n != 80*30 {
		t.Errorf("view has %d cells, expected %d", n, 80*30)
	}
}
