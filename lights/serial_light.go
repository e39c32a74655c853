//go:build !noserial

package lights

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tarm/serial"

	"arcology/logging"
)

// SerialLight implements Light for controllers attached to a serial port.
// The port is opened on first use and kept open until Close.
type SerialLight struct {
	port     string
	baudRate int
	logger   zerolog.Logger
	open     func() (io.ReadWriteCloser, error)

	mu      sync.Mutex
	conn    io.ReadWriteCloser
	powered bool
}

// NewSerialLight creates a new SerialLight instance
func NewSerialLight(port string, baudRate int, logger zerolog.Logger) *SerialLight {
	l := &SerialLight{
		port:     port,
		baudRate: baudRate,
		logger:   logger.With().Str(logging.LogKey.Module, "SerialLight").Logger(),
	}
	l.open = l.openPort
	return l
}

func (l *SerialLight) openPort() (io.ReadWriteCloser, error) {
	c := &serial.Config{
		Name: l.port,
		Baud: l.baudRate,
	}
	return serial.OpenPort(c)
}

// connection returns the open port. Call with l.mu held.
func (l *SerialLight) connection() (io.ReadWriteCloser, error) {
	if l.conn != nil {
		return l.conn, nil
	}
	conn, err := l.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.port, err)
	}
	l.logger.Info().Str("port", l.port).Int("baud", l.baudRate).Msg("Opened port")
	l.conn = conn
	return conn, nil
}

// send writes frames, dropping the connection on failure so the next call reopens it.
func (l *SerialLight) send(frames ...[]byte) error {
	conn, err := l.connection()
	if err != nil {
		return err
	}
	for _, f := range frames {
		if err := writeFrame(conn, f); err != nil {
			l.closeLocked()
			return err
		}
	}
	return nil
}

func (l *SerialLight) On(c Color) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	frames := [][]byte{colorFrame(c)}
	if !l.powered {
		frames = append([][]byte{powerFrame(true)}, frames...)
	}
	if err := l.send(frames...); err != nil {
		return err
	}
	l.powered = true
	return nil
}

func (l *SerialLight) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.send(powerFrame(false)); err != nil {
		return err
	}
	l.powered = false
	return nil
}

func (l *SerialLight) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *SerialLight) closeLocked() error {
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	if err != nil {
		l.logger.Error().Err(err).Msg("Error closing serial port")
	}
	l.conn = nil
	l.powered = false
	return err
}
