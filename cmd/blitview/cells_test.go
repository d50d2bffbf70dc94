package main

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/pixel"
	"github.com/gogpu/blit/present"
)

func TestKeyFromEvent(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want blit.Key
	}{
		{tcell.KeyRune, 'a', blit.KeyA},
		{tcell.KeyRune, ' ', blit.KeySpace},
		{tcell.KeyUp, 0, blit.KeyUp},
		{tcell.KeyPgDn, 0, blit.KeyPageDown},
		{tcell.KeyBackspace2, 0, blit.KeyBackspace},
		{tcell.KeyF1, 0, blit.KeyF1},
		{tcell.KeyF12, 0, blit.KeyF12},
		{tcell.KeyCtrlX, 0, blit.KeyUnknown},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone)
		if got := keyFromEvent(ev); got != tt.want {
			t.Errorf("keyFromEvent(%v, %q) = %d, want %d", tt.key, tt.ch, got, tt.want)
		}
	}
}

func TestCellPixelRows(t *testing.T) {
	tests := []struct{ rows, want int }{
		{25, 48},
		{2, 2},
		{1, 2},
		{0, 2},
	}
	for _, tt := range tests {
		if got := cellPixelRows(tt.rows); got != tt.want {
			t.Errorf("cellPixelRows(%d) = %d, want %d", tt.rows, got, tt.want)
		}
	}
}

func TestDrawCells(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(4, 3)

	view := pixel.New(2, 3)
	view.Set(0, 0, 0xFF0000)
	view.Set(0, 1, 0x00FF00)
	view.Set(1, 2, 0x0000FF)
	drawCells(s, view)

	tests := []struct {
		x, y   int
		fg, bg tcell.Color
		hasBg  bool
	}{
		{0, 0, cellColor(0xFF0000), cellColor(0x00FF00), true},
		{1, 1, cellColor(0x0000FF), 0, false},
	}
	for _, tt := range tests {
		ch, _, style, _ := s.GetContent(tt.x, tt.y)
		if ch != '▀' {
			t.Errorf("cell (%d, %d) = %q, want upper half block", tt.x, tt.y, ch)
		}
		fg, bg, _ := style.Decompose()
		if fg != tt.fg {
			t.Errorf("cell (%d, %d) fg = %v, want %v", tt.x, tt.y, fg, tt.fg)
		}
		if tt.hasBg && bg != tt.bg {
			t.Errorf("cell (%d, %d) bg = %v, want %v", tt.x, tt.y, bg, tt.bg)
		}
	}
}

func TestPumpReportsProducerError(t *testing.T) {
	boom := errors.New("submit failed")
	tests := []struct {
		name string
		err  error
	}{
		{"producer error", boom},
		{"producer done", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := make(chan present.Handle)
			close(frames)
			errc := make(chan error, 1)
			errc <- tt.err

			sh := &cellShell{}
			err := sh.pump(context.Background(), nil, frames, errc, 0)
			if !errors.Is(err, tt.err) {
				t.Errorf("pump() error = %v, want %v", err, tt.err)
			}
			if got := <-errc; got != tt.err {
				t.Errorf("errc = %v, want %v put back", got, tt.err)
			}
		})
	}
}
