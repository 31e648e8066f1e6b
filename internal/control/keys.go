// Package control turns raw key and touch events into per-actor control
// signals. Event listeners only write live input state here; the update tick
// samples that state once per frame.
package control

import "time"

// KeyState is the live set of held keys.
//
// Hosts with real key-up events call Release. Terminals only deliver presses
// and autorepeat, so a non-zero hold window releases any key that was not
// pressed again within the window.
type KeyState struct {
	held map[string]time.Duration
	hold time.Duration
}

// NewKeyState creates an empty key set. hold of zero waits for Release.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		held: make(map[string]time.Duration),
		hold: hold,
	}
}

// Press marks key as held at the given session time.
func (k *KeyState) Press(key string, now time.Duration) {
	k.held[key] = now
}

// Release marks key as up.
func (k *KeyState) Release(key string) {
	delete(k.held, key)
}

// Held reports whether key is down.
func (k *KeyState) Held(key string) bool {
	_, ok := k.held[key]
	return ok
}

// Any reports whether any of keys is down.
func (k *KeyState) Any(keys []string) bool {
	for _, key := range keys {
		if k.Held(key) {
			return true
		}
	}
	return false
}

// Expire releases keys older than the hold window.
func (k *KeyState) Expire(now time.Duration) {
	if k.hold <= 0 {
		return
	}
	for key, at := range k.held {
		if now-at > k.hold {
			delete(k.held, key)
		}
	}
}

// Clear releases every key.
func (k *KeyState) Clear() {
	for key := range k.held {
		delete(k.held, key)
	}
}
