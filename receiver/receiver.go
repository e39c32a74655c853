// Package receiver reads decoded IR codes from a receiver board on a serial port.
package receiver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tarm/serial"

	"arcology/ircode"
	"arcology/logging"
)

const (
	repeatMarker  = "FFFFFFFF"
	retryInterval = 500 * time.Millisecond
)

var errSkipLine = errors.New("skip line")

// Press is one button press, or a held-button repeat, seen by the receiver.
type Press struct {
	ID     uuid.UUID   `json:"id"`
	Code   ircode.Code `json:"code"`
	Repeat bool        `json:"repeat"`
	At     time.Time   `json:"at"`
}

// NewPress stamps a press with a fresh ID.
func NewPress(code ircode.Code, repeat bool, at time.Time) Press {
	return Press{ID: uuid.New(), Code: code, Repeat: repeat, At: at}
}

// ParseLine parses one line of receiver output. The repeat marker yields a
// press with Repeat set and no code.
func ParseLine(line string) (code ircode.Code, repeat bool, err error) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return 0, false, errSkipLine
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if strings.EqualFold(bare, repeatMarker) {
		return 0, true, nil
	}
	code, err = ircode.ParseCode(s)
	if err != nil {
		return 0, false, err
	}
	return code, false, nil
}

// Opener opens the receiver's byte stream.
type Opener func() (io.ReadCloser, error)

// SerialOpener opens a serial port with tarm/serial.
func SerialOpener(portName string, baudRate int) Opener {
	return func() (io.ReadCloser, error) {
		return serial.OpenPort(&serial.Config{Name: portName, Baud: baudRate})
	}
}

type Receiver struct {
	logger    zerolog.Logger
	name      string
	open      Opener
	out       chan Press
	waitGroup *sync.WaitGroup
	retry     time.Duration
	now       func() time.Time
}

func New(logger zerolog.Logger, name string, open Opener, waitGroup *sync.WaitGroup) *Receiver {
	return &Receiver{
		logger:    logger.With().Str(logging.LogKey.Module, "Receiver").Str(logging.LogKey.Port, name).Logger(),
		name:      name,
		open:      open,
		out:       make(chan Press, 10),
		waitGroup: waitGroup,
		retry:     retryInterval,
		now:       time.Now,
	}
}

// Presses is closed once the receiver stops.
func (r *Receiver) Presses() <-chan Press {
	return r.out
}

func (r *Receiver) Start(ctx context.Context) {
	r.waitGroup.Add(1)
	go r.loop(ctx)
}

func (r *Receiver) loop(ctx context.Context) {
	defer r.waitGroup.Done()
	defer close(r.out)

	errorShown := false
	for {
		port, err := r.open()
		if err != nil {
			if !errorShown {
				r.logger.Error().Err(err).Msg("Failed opening port")
				errorShown = true
			}
			if !r.wait(ctx) {
				r.logger.Info().Msg("Stopping")
				return
			}
			continue
		}
		if errorShown {
			r.logger.Info().Msg("Opened port")
			errorShown = false
		}

		r.read(ctx, port)

		if !r.wait(ctx) {
			r.logger.Info().Msg("Stopping")
			return
		}
		r.logger.Info().Msg("Reconnecting")
	}
}

// wait sleeps for the retry interval and reports whether the context is still live.
func (r *Receiver) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(r.retry):
		return ctx.Err() == nil
	}
}

// read forwards presses until the stream ends or the context is cancelled.
func (r *Receiver) read(ctx context.Context, port io.ReadCloser) {
	var once sync.Once
	closePort := func() {
		once.Do(func() {
			if err := port.Close(); err != nil {
				r.logger.Error().Err(err).Msg("Error closing port")
			}
		})
	}
	defer closePort()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks the scanner's pending Read
			closePort()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		code, repeat, err := ParseLine(scanner.Text())
		if errors.Is(err, errSkipLine) {
			continue
		}
		if err != nil {
			r.logger.Warn().Err(err).Msg("Ignoring receiver line")
			continue
		}

		press := NewPress(code, repeat, r.now())
		r.logger.Debug().Str("press", press.ID.String()).Stringer("code", code).Bool("repeat", repeat).Msg("Received")
		select {
		case r.out <- press:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		r.logger.Error().Err(fmt.Errorf("read %s: %w", r.name, err)).Msg("Read failed")
	}
}
