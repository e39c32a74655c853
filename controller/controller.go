package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"arcology/ircode"
	"arcology/lights"
	"arcology/logging"
)

var (
	ErrPoweredOff     = errors.New("controller is off")
	ErrNotRepeatable  = errors.New("last key does not repeat")
	ErrUnsupportedKey = errors.New("key has no action")

	errStale = errors.New("stale effect frame")
)

// Controller is the LED strip state machine. It is safe for concurrent use.
// Effects run on their own goroutine and are preempted by the next key.
type Controller struct {
	logger   zerolog.Logger
	light    lights.Light
	interval func(Mode, int) time.Duration

	mu         sync.Mutex
	state      State
	lastKey    ircode.Key
	cancel     context.CancelFunc
	generation uint64 // bumped on every preemption so stale frames are dropped
	effects    sync.WaitGroup
}

// New returns a powered-off controller showing white at full brightness.
// slots seeds the DIY slot colours.
func New(logger zerolog.Logger, light lights.Light, slots [SlotCount]lights.Color) *Controller {
	return &Controller{
		logger:   logging.For(logger, "Controller"),
		light:    light,
		interval: frameInterval,
		state: State{
			Color:      lights.White,
			Brightness: MaxBrightness,
			Speed:      DefaultSpeed,
			Mode:       ModeStatic,
			Slots:      slots,
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Repeat re-applies the last key while a button is held.
func (c *Controller) Repeat() (ircode.Key, error) {
	c.mu.Lock()
	key := c.lastKey
	c.mu.Unlock()

	if key == "" || !key.Repeatable() {
		return key, ErrNotRepeatable
	}
	return key, c.Handle(key)
}

// Handle applies one key press.
func (c *Controller) Handle(key ircode.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Power && key != ircode.KeyOn {
		return ErrPoweredOff
	}

	restart := true
	s := &c.state
	switch key.Kind() {
	case ircode.KindPower:
		if key == ircode.KeyOff {
			c.cancelLocked()
			if err := c.light.Clear(); err != nil {
				return fmt.Errorf("clear light: %w", err)
			}
			c.lastKey = key
			s.Power = false
			return nil
		}
		s.Power = true

	case ircode.KindBrightness:
		delta := 1
		if key == ircode.KeyBMinus {
			delta = -1
		}
		s.Brightness = clamp(s.Brightness+delta, MinBrightness, MaxBrightness)
		// running effects pick the new level up on their next frame
		restart = s.Mode == ModeStatic

	case ircode.KindColor:
		color, ok := presets[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
		}
		s.Color = color
		s.Mode = ModeStatic
		s.Slot = 0

	case ircode.KindChannel:
		base := s.Color
		if s.Slot > 0 {
			base = s.Slots[s.Slot-1]
		}
		s.Color = adjustChannel(base, key)
		if s.Slot > 0 {
			s.Slots[s.Slot-1] = s.Color
		}
		s.Mode = ModeStatic

	case ircode.KindDIY:
		s.Slot = key.Slot()
		s.Color = s.Slots[s.Slot-1]
		s.Mode = ModeStatic

	case ircode.KindSpeed:
		delta := 1
		if key == ircode.KeySlow {
			delta = -1
		}
		s.Speed = clamp(s.Speed+delta, MinSpeed, MaxSpeed)
		restart = s.Mode != ModeStatic

	case ircode.KindAuto:
		s.Mode = ModeAuto

	case ircode.KindEffect:
		s.Mode = effectModes[key]

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}

	c.lastKey = key
	c.logger.Debug().Str("key", string(key)).Str("mode", string(s.Mode)).Msg("Applied key")
	if !restart {
		return nil
	}
	return c.applyLocked()
}

// applyLocked shows the current state, preempting any running effect.
func (c *Controller) applyLocked() error {
	c.cancelLocked()
	if c.state.Mode == ModeStatic {
		return c.writeLocked(c.state.Color)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	gen := c.generation
	seq := frames(c.state.Mode, c.state.Color)
	interval := c.interval(c.state.Mode, c.state.Speed)

	c.effects.Add(1)
	go c.runEffect(ctx, gen, seq, interval)
	return nil
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}

// writeLocked scales by brightness, gamma-corrects and sends to the light.
func (c *Controller) writeLocked(color lights.Color) error {
	out := color.Scale(c.state.Brightness, MaxBrightness).Gamma()
	if err := c.light.On(out); err != nil {
		return fmt.Errorf("show %s: %w", out, err)
	}
	return nil
}

func (c *Controller) show(gen uint64, color lights.Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return errStale
	}
	return c.writeLocked(color)
}

func (c *Controller) runEffect(ctx context.Context, gen uint64, seq []lights.Color, interval time.Duration) {
	defer c.effects.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(seq) {
		if err := c.show(gen, seq[i]); err != nil {
			if errors.Is(err, errStale) {
				return
			}
			c.logger.Warn().Err(err).Msg("Effect frame failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close stops any running effect and waits for it to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelLocked()
	c.mu.Unlock()
	c.effects.Wait()
}
