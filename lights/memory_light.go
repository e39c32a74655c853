package lights

import "sync"

// MemoryLight implements Light by recording what it was asked to show.
// It backs dry runs when no controller is attached.
type MemoryLight struct {
	mu      sync.Mutex
	isOn    bool
	current Color
	history []Color
	limit   int
}

// NewMemoryLight keeps up to limit colours of history; zero keeps none.
func NewMemoryLight(limit int) *MemoryLight {
	return &MemoryLight{limit: limit}
}

// On records a steady colour
func (l *MemoryLight) On(c Color) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.isOn = true
	l.current = c
	if l.limit > 0 {
		l.history = append(l.history, c)
		if len(l.history) > l.limit {
			l.history = l.history[len(l.history)-l.limit:]
		}
	}
	return nil
}

// Clear turns off the light
func (l *MemoryLight) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.isOn = false
	l.current = Black
	return nil
}

// Close cleans up resources by clearing the light state
func (l *MemoryLight) Close() error {
	return l.Clear()
}

// Current returns the colour shown and whether the light is on.
func (l *MemoryLight) Current() (Color, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.isOn
}

// History returns a copy of the recorded colours, oldest first.
func (l *MemoryLight) History() []Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Color, len(l.history))
	copy(out, l.history)
	return out
}
