// Package nec encodes and decodes NEC infrared frames as mark/space timings.
package nec

import (
	"errors"
	"fmt"
	"time"

	"arcology/ircode"
)

const (
	LeaderMark  = 9000 * time.Microsecond
	LeaderSpace = 4500 * time.Microsecond
	RepeatSpace = 2250 * time.Microsecond
	BitMark     = 562500 * time.Nanosecond
	ZeroSpace   = 562500 * time.Nanosecond
	OneSpace    = 1687500 * time.Nanosecond

	frameBits = 32
)

var (
	ErrNoLeader   = errors.New("nec: missing leader")
	ErrShortFrame = errors.New("nec: short frame")
	ErrBadBit     = errors.New("nec: bad bit timing")
	ErrChecksum   = errors.New("nec: command does not match its inverse")
)

// Pulse is one mark followed by one space.
type Pulse struct {
	Mark  time.Duration `json:"mark"`
	Space time.Duration `json:"space"`
}

func (p Pulse) String() string {
	return fmt.Sprintf("(%v, %v)", p.Mark, p.Space)
}

// Frame is a decoded NEC transmission. Raw holds the 32 data bits with the
// first bit received in the most significant position, which is how IR
// receiver boards print them (0x00F7C03F).
type Frame struct {
	Raw    uint32
	Repeat bool
}

// Code returns the low 24 bits.
func (f Frame) Code() ircode.Code {
	return ircode.Code(f.Raw & uint32(ircode.MaxCode))
}

// Extended reports whether the frame carries a non-zero top address byte,
// which the 24-bit tables cannot represent.
func (f Frame) Extended() bool {
	return f.Raw>>24 != 0
}

// within reports whether d is within 25% of want.
func within(d, want time.Duration) bool {
	return d >= want*3/4 && d <= want*5/4
}

// Decode parses a leader, 32 data bits and a stop mark, or a repeat frame.
func Decode(pulses []Pulse) (Frame, error) {
	if len(pulses) == 0 || !within(pulses[0].Mark, LeaderMark) {
		return Frame{}, ErrNoLeader
	}

	if within(pulses[0].Space, RepeatSpace) {
		if len(pulses) < 2 || !within(pulses[1].Mark, BitMark) {
			return Frame{}, ErrShortFrame
		}
		return Frame{Repeat: true}, nil
	}
	if !within(pulses[0].Space, LeaderSpace) {
		return Frame{}, ErrNoLeader
	}

	if len(pulses) < frameBits+2 {
		return Frame{}, fmt.Errorf("%w: %d pulses", ErrShortFrame, len(pulses))
	}

	var raw uint32
	for i := 1; i <= frameBits; i++ {
		p := pulses[i]
		if !within(p.Mark, BitMark) {
			return Frame{}, fmt.Errorf("%w: bit %d mark %v", ErrBadBit, i-1, p.Mark)
		}
		raw <<= 1
		switch {
		case within(p.Space, ZeroSpace):
		case within(p.Space, OneSpace):
			raw |= 1
		default:
			return Frame{}, fmt.Errorf("%w: bit %d space %v", ErrBadBit, i-1, p.Space)
		}
	}
	if !within(pulses[frameBits+1].Mark, BitMark) {
		return Frame{}, fmt.Errorf("%w: missing stop mark", ErrShortFrame)
	}

	f := Frame{Raw: raw}
	if !f.Code().Complemented() {
		return f, fmt.Errorf("%w: %08X", ErrChecksum, raw)
	}
	return f, nil
}

// Encode returns the timings that transmit code with a zero top address byte.
func Encode(code ircode.Code) []Pulse {
	return EncodeRaw(uint32(code))
}

// EncodeRaw returns the timings for 32 raw data bits.
func EncodeRaw(raw uint32) []Pulse {
	pulses := make([]Pulse, 0, frameBits+2)
	pulses = append(pulses, Pulse{Mark: LeaderMark, Space: LeaderSpace})
	for i := frameBits - 1; i >= 0; i-- {
		space := ZeroSpace
		if raw&(1<<uint(i)) != 0 {
			space = OneSpace
		}
		pulses = append(pulses, Pulse{Mark: BitMark, Space: space})
	}
	return append(pulses, Pulse{Mark: BitMark})
}

// RepeatPulses returns the frame a remote sends while a button is held.
func RepeatPulses() []Pulse {
	return []Pulse{
		{Mark: LeaderMark, Space: RepeatSpace},
		{Mark: BitMark},
	}
}
