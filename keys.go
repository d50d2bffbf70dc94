// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"math"
	"sync"
	"time"
)

// Key identifies a keyboard key. Shells translate their native key codes
// into Key values before calling Session.HandleKey.
type Key uint8

// Keys understood by blit.
const (
	KeyUnknown Key = iota

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyEscape
	KeyEnter
	KeySpace
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt

	keyCount
)

// KeyForRune maps a printable ASCII rune to its key. Letters are
// case-insensitive. It returns KeyUnknown for anything else.
func KeyForRune(r rune) Key {
	switch {
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r == ' ':
		return KeySpace
	case r == '\t':
		return KeyTab
	case r == '\r', r == '\n':
		return KeyEnter
	default:
		return KeyUnknown
	}
}

// Default key repeat timing.
const (
	DefaultRepeatDelay = 250 * time.Millisecond
	DefaultRepeatRate  = 50 * time.Millisecond
)

// KeyState tracks which keys are held and for how long, so applications
// can poll for presses with auto-repeat once per frame.
//
// Set records raw transitions as the shell reports them; Update advances
// the clock and must be called once per frame. A KeyState is safe for
// concurrent use.
type KeyState struct {
	mu    sync.Mutex
	down  [keyCount]bool
	prev  [keyCount]bool
	held  [keyCount]time.Duration // -1 when up
	delta time.Duration
	delay time.Duration
	rate  time.Duration
}

// NewKeyState returns a tracker with the default repeat timing.
func NewKeyState() *KeyState {
	k := &KeyState{delay: DefaultRepeatDelay, rate: DefaultRepeatRate}
	for i := range k.held {
		k.held[i] = -1
	}
	return k
}

// SetRepeat changes the auto-repeat delay and interval. Non-positive rates
// disable repeating.
func (k *KeyState) SetRepeat(delay, rate time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.delay, k.rate = delay, rate
}

// Set records that key went down or up.
func (k *KeyState) Set(key Key, down bool) {
	if key >= keyCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down[key] = down
}

// Update advances held durations by delta and snapshots the previous
// frame's state for IsReleased.
func (k *KeyState) Update(delta time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.delta = delta
	for i := range k.down {
		switch {
		case !k.down[i]:
			k.held[i] = -1
		case k.held[i] < 0:
			k.held[i] = 0
		default:
			k.held[i] += delta
		}
		k.prev[i] = k.down[i]
	}
}

// IsDown reports whether key is currently held.
func (k *KeyState) IsDown(key Key) bool {
	if key >= keyCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.down[key]
}

// IsPressed reports whether key went down this frame. With repeat set, a
// key held past the repeat delay also reports a press once per repeat
// interval.
func (k *KeyState) IsPressed(key Key, repeat bool) bool {
	if key >= keyCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressedLocked(key, repeat)
}

// IsReleased reports whether key went up since the last Update.
func (k *KeyState) IsReleased(key Key) bool {
	if key >= keyCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.prev[key] && !k.down[key]
}

// Pressed returns every key that IsPressed would report.
func (k *KeyState) Pressed(repeat bool) []Key {
	k.mu.Lock()
	defer k.mu.Unlock()

	var keys []Key
	for i := range keyCount {
		if k.down[i] && k.pressedLocked(i, repeat) {
			keys = append(keys, i)
		}
	}
	return keys
}

// Down returns every key currently held.
func (k *KeyState) Down() []Key {
	k.mu.Lock()
	defer k.mu.Unlock()

	var keys []Key
	for i := range keyCount {
		if k.down[i] {
			keys = append(keys, i)
		}
	}
	return keys
}

// pressedLocked fires on the first frame a key is held and, with repeat,
// whenever the held time crosses the middle of a repeat interval.
func (k *KeyState) pressedLocked(key Key, repeat bool) bool {
	t := k.held[key]
	if t == 0 {
		return true
	}
	if !repeat || k.rate <= 0 || t <= k.delay {
		return false
	}

	rate := k.rate.Seconds()
	phase := func(d time.Duration) bool {
		return math.Mod(d.Seconds(), rate) > rate*0.5
	}
	since := t - k.delay
	return phase(since) != phase(since-k.delta)
}
