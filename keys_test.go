// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"testing"
	"time"
)

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Key
	}{
		{'a', KeyA},
		{'Z', KeyZ},
		{'0', Key0},
		{'9', Key9},
		{' ', KeySpace},
		{'\r', KeyEnter},
		{'\t', KeyTab},
		{'é', KeyUnknown},
		{'#', KeyUnknown},
	}
	for _, tt := range tests {
		if got := KeyForRune(tt.r); got != tt.want {
			t.Errorf("KeyForRune(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestKeyStatePressRelease(t *testing.T) {
	k := NewKeyState()

	k.Set(KeyA, true)
	k.Update(16 * time.Millisecond)
	if !k.IsPressed(KeyA, false) {
		t.Error("IsPressed() on first frame = false, want true")
	}
	if got := k.Pressed(false); len(got) != 1 || got[0] != KeyA {
		t.Errorf("Pressed() = %v, want [KeyA]", got)
	}

	k.Update(16 * time.Millisecond)
	if k.IsPressed(KeyA, false) {
		t.Error("IsPressed() on second frame = true, want false")
	}
	if !k.IsDown(KeyA) {
		t.Error("IsDown() = false while held")
	}
	if got := k.Down(); len(got) != 1 || got[0] != KeyA {
		t.Errorf("Down() = %v, want [KeyA]", got)
	}

	k.Set(KeyA, false)
	if !k.IsReleased(KeyA) {
		t.Error("IsReleased() = false right after release")
	}
	k.Update(16 * time.Millisecond)
	if k.IsReleased(KeyA) {
		t.Error("IsReleased() = true one frame after release")
	}
	if k.IsDown(KeyA) {
		t.Error("IsDown() = true after release")
	}
}

func TestKeyStateRepeat(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyRight, true)
	k.Update(10 * time.Millisecond)

	repeats, plain := 0, 0
	for range 49 { // held to 490ms
		k.Update(10 * time.Millisecond)
		if k.IsPressed(KeyRight, true) {
			repeats++
		}
		if k.IsPressed(KeyRight, false) {
			plain++
		}
	}
	if repeats == 0 {
		t.Error("no repeats after holding past the repeat delay")
	}
	if plain != 0 {
		t.Errorf("non-repeating presses = %d, want 0", plain)
	}
}

func TestKeyStateNoRepeatBeforeDelay(t *testing.T) {
	k := NewKeyState()
	k.SetRepeat(time.Second, 50*time.Millisecond)
	k.Set(KeyUp, true)
	k.Update(0)

	for range 20 {
		k.Update(10 * time.Millisecond)
		if k.IsPressed(KeyUp, true) {
			t.Fatal("repeat fired before the delay elapsed")
		}
	}
}

func TestKeyStateOutOfRange(t *testing.T) {
	k := NewKeyState()
	k.Set(Key(255), true)
	if k.IsDown(Key(255)) || k.IsPressed(Key(255), true) || k.IsReleased(Key(255)) {
		t.Error("out-of-range key reported as active")
	}
}
