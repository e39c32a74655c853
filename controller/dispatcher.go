package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"arcology/ircode"
	"arcology/logging"
	"arcology/receiver"
)

var ErrUnknownCode = errors.New("code not in table")

// Stats counts what the dispatcher has seen.
type Stats struct {
	Handled uint64            `json:"handled"`
	Ignored uint64            `json:"ignored"`
	Unknown map[string]uint64 `json:"unknown"`
}

// Dispatcher resolves received codes through one remote table and feeds the
// resulting keys to a Controller.
type Dispatcher struct {
	logger     zerolog.Logger
	table      *ircode.Table
	controller *Controller
	waitGroup  *sync.WaitGroup

	mu    sync.Mutex
	stats Stats
}

func NewDispatcher(logger zerolog.Logger, table *ircode.Table, controller *Controller, waitGroup *sync.WaitGroup) *Dispatcher {
	return &Dispatcher{
		logger:     logging.For(logger, "Dispatcher").With().Str("table", table.Name()).Logger(),
		table:      table,
		controller: controller,
		waitGroup:  waitGroup,
		stats:      Stats{Unknown: make(map[string]uint64)},
	}
}

// Table returns the table codes are resolved against.
func (d *Dispatcher) Table() *ircode.Table {
	return d.table
}

// Dispatch handles one press and returns the key it resolved to.
func (d *Dispatcher) Dispatch(p receiver.Press) (ircode.Key, error) {
	var (
		key ircode.Key
		err error
	)
	if p.Repeat {
		key, err = d.controller.Repeat()
	} else {
		b, ok := d.table.Lookup(p.Code)
		if !ok {
			d.mu.Lock()
			d.stats.Unknown[p.Code.String()]++
			d.mu.Unlock()
			return "", fmt.Errorf("%w: %s", ErrUnknownCode, p.Code)
		}
		key = b.Key
		err = d.controller.Handle(key)
	}

	d.mu.Lock()
	switch {
	case err == nil:
		d.stats.Handled++
	case errors.Is(err, ErrPoweredOff), errors.Is(err, ErrNotRepeatable):
		d.stats.Ignored++
	}
	d.mu.Unlock()
	return key, err
}

// Stats returns a copy of the counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := Stats{Handled: d.stats.Handled, Ignored: d.stats.Ignored, Unknown: make(map[string]uint64, len(d.stats.Unknown))}
	for k, v := range d.stats.Unknown {
		out.Unknown[k] = v
	}
	return out
}

func (d *Dispatcher) Start(ctx context.Context, presses <-chan receiver.Press) {
	d.waitGroup.Add(1)
	go d.loop(ctx, presses)
}

func (d *Dispatcher) loop(ctx context.Context, presses <-chan receiver.Press) {
	defer d.waitGroup.Done()
	d.logger.Info().Msg("Dispatcher starting")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("Dispatcher done")
			return
		case p, more := <-presses:
			if !more {
				d.logger.Info().Msg("Dispatcher no more presses")
				return
			}
			key, err := d.Dispatch(p)
			log := d.logger.Debug()
			switch {
			case errors.Is(err, ErrUnknownCode):
				log = d.logger.Warn()
			case errors.Is(err, ErrPoweredOff), errors.Is(err, ErrNotRepeatable):
			case err != nil:
				log = d.logger.Error()
			}
			log.Err(err).Str("press", p.ID.String()).Stringer("code", p.Code).Str("key", string(key)).Bool("repeat", p.Repeat).Msg("Dispatched")
		}
	}
}
