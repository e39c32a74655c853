package lights

import "fmt"

// Color is an RGB value as sent to the strip.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

var (
	Black = Color{}
	White = Color{255, 255, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale multiplies every channel by num/den.
func (c Color) Scale(num, den int) Color {
	if den <= 0 {
		return Black
	}
	s := func(v uint8) uint8 {
		return uint8(int(v) * num / den)
	}
	return Color{s(c.R), s(c.G), s(c.B)}
}

// Gamma squares each channel so brightness steps look even to the eye.
func (c Color) Gamma() Color {
	g := func(v uint8) uint8 {
		return uint8((uint16(v) * uint16(v)) / 255)
	}
	return Color{g(c.R), g(c.G), g(c.B)}
}

// Light defines the interface for LED strip outputs
type Light interface {
	// On shows a steady colour, powering the strip up if needed
	On(c Color) error
	// Clear powers the strip off
	Clear() error
	// Close releases the underlying device
	Close() error
}
