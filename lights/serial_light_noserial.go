//go:build noserial

package lights

import (
	"errors"

	"github.com/rs/zerolog"
)

var errNoSerial = errors.New("serial port support not available in this build")

// SerialLight implements Light interface for serial-attached controllers
type SerialLight struct{}

// NewSerialLight creates a new SerialLight instance
func NewSerialLight(port string, baudRate int, logger zerolog.Logger) *SerialLight {
	return &SerialLight{}
}

func (l *SerialLight) On(c Color) error {
	return errNoSerial
}

func (l *SerialLight) Clear() error {
	return errNoSerial
}

func (l *SerialLight) Close() error {
	return nil
}
