// Package controller turns remote key presses into LED strip output.
package controller

import (
	"arcology/ircode"
	"arcology/lights"
)

const (
	MinBrightness = 1
	MaxBrightness = 10
	MinSpeed      = 1
	MaxSpeed      = 8
	DefaultSpeed  = 4
	SlotCount     = 6

	channelStep = 17
)

// Mode is what the strip is doing while powered.
type Mode string

const (
	ModeStatic Mode = "static"
	ModeFlash  Mode = "flash"
	ModeJump3  Mode = "jump3"
	ModeJump7  Mode = "jump7"
	ModeFade3  Mode = "fade3"
	ModeFade7  Mode = "fade7"
	ModeSmooth Mode = "smooth"
	ModeStrobe Mode = "strobe"
	ModeAuto   Mode = "auto"
)

// State is a point-in-time copy of the controller.
type State struct {
	Power      bool                    `json:"power"`
	Color      lights.Color            `json:"color"`
	Brightness int                     `json:"brightness"`
	Speed      int                     `json:"speed"`
	Mode       Mode                    `json:"mode"`
	Slot       int                     `json:"slot"`
	Slots      [SlotCount]lights.Color `json:"slots"`
}

var (
	yellow  = lights.Color{R: 255, G: 255}
	cyan    = lights.Color{G: 255, B: 255}
	magenta = lights.Color{R: 255, B: 255}

	threeColors = []lights.Color{{R: 255}, {G: 255}, {B: 255}}
	sevenColors = []lights.Color{{R: 255}, {G: 255}, {B: 255}, yellow, cyan, magenta, lights.White}
)

// presets follow the colour printed on each button.
var presets = map[ircode.Key]lights.Color{
	ircode.KeyR:   {R: 255},
	ircode.KeyG:   {G: 255},
	ircode.KeyB:   {B: 255},
	ircode.KeyW:   lights.White,
	ircode.KeyB1:  {G: 200, B: 60},
	ircode.KeyB2:  {R: 255, B: 255},
	ircode.KeyB3:  {G: 64, B: 255},
	ircode.KeyB4:  {R: 255, G: 240, B: 220},
	ircode.KeyB5:  {R: 120, G: 200, B: 40},
	ircode.KeyB6:  {R: 128, B: 128},
	ircode.KeyB7:  {G: 128, B: 255},
	ircode.KeyB8:  {R: 100, G: 200, B: 255},
	ircode.KeyB9:  {R: 255, G: 255, B: 128},
	ircode.KeyB10: {R: 128, G: 255, B: 128},
	ircode.KeyB11: {R: 60, G: 80, B: 255},
	ircode.KeyB12: {R: 220, G: 230, B: 255},
	ircode.KeyB13: {R: 255, G: 220},
	ircode.KeyB14: {R: 180, G: 80, B: 255},
	ircode.KeyB15: {G: 255, B: 180},
	ircode.KeyB16: {R: 200, G: 100, B: 220},
}

var effectModes = map[ircode.Key]Mode{
	ircode.KeyFlash:  ModeFlash,
	ircode.KeyJump3:  ModeJump3,
	ircode.KeyJump7:  ModeJump7,
	ircode.KeyFade3:  ModeFade3,
	ircode.KeyFade:   ModeFade7,
	ircode.KeyFade7:  ModeFade7,
	ircode.KeySmooth: ModeSmooth,
	ircode.KeyStrobe: ModeStrobe,
}

// Preset returns the colour shown for a colour key.
func Preset(key ircode.Key) (lights.Color, bool) {
	c, ok := presets[key]
	return c, ok
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func adjustChannel(c lights.Color, key ircode.Key) lights.Color {
	step := func(v uint8, delta int) uint8 {
		return uint8(clamp(int(v)+delta, 0, 255))
	}
	switch key {
	case ircode.KeyUpR:
		c.R = step(c.R, channelStep)
	case ircode.KeyDownR:
		c.R = step(c.R, -channelStep)
	case ircode.KeyUpG:
		c.G = step(c.G, channelStep)
	case ircode.KeyDownG:
		c.G = step(c.G, -channelStep)
	case ircode.KeyUpB:
		c.B = step(c.B, channelStep)
	case ircode.KeyDownB:
		c.B = step(c.B, -channelStep)
	}
	return c
}
