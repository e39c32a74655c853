// Package ircode defines infrared command codes for the Arcology LED controller remote
// and the tables binding button names to them.
package ircode

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCode is the largest value a 24-bit NEC code can carry.
const MaxCode Code = 0xFFFFFF

// Code is an infrared command code as reported by the receiver, with the
// leading zero address byte stripped. Byte layout, most significant first:
// address, command, inverted command.
type Code uint32

// Address returns the address byte.
func (c Code) Address() byte {
	return byte(c >> 16)
}

// Command returns the command byte.
func (c Code) Command() byte {
	return byte(c >> 8)
}

// Inverse returns the inverted command byte.
func (c Code) Inverse() byte {
	return byte(c)
}

// InRange reports whether the code fits in 24 bits.
func (c Code) InRange() bool {
	return c <= MaxCode
}

// Complemented reports whether the command and inverted command bytes agree,
// as every well-formed NEC frame requires.
func (c Code) Complemented() bool {
	return c.Command()^c.Inverse() == 0xFF
}

func (c Code) String() string {
	return fmt.Sprintf("0x%06X", uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCode parses a hex code with or without a 0x prefix. Receivers print the
// full 32-bit frame, so a value with a zero top byte is accepted as well.
func ParseCode(s string) (Code, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if trimmed == "" {
		return 0, fmt.Errorf("parse code %q: %w", s, ErrEmptyCode)
	}
	if len(trimmed) > 8 {
		return 0, fmt.Errorf("parse code %q: %w", s, ErrOutOfRange)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse code %q: %w", s, err)
	}
	c := Code(v)
	if !c.InRange() {
		return 0, fmt.Errorf("parse code %q: %w", s, ErrOutOfRange)
	}
	return c, nil
}
