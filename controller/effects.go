package controller

import (
	"time"

	"arcology/lights"
)

const (
	fadeSteps   = 16
	smoothSteps = 32
	baseFrame   = 60 * time.Millisecond
)

var autoSequence = []Mode{ModeJump3, ModeJump7, ModeFade3, ModeFade7, ModeFlash, ModeStrobe, ModeSmooth}

// frames returns one cycle of the effect. base is the colour strobe pulses.
func frames(mode Mode, base lights.Color) []lights.Color {
	switch mode {
	case ModeFlash:
		out := make([]lights.Color, 0, 2*len(sevenColors))
		for _, c := range sevenColors {
			out = append(out, c, lights.Black)
		}
		return out
	case ModeStrobe:
		return []lights.Color{base, lights.Black}
	case ModeJump3:
		return append([]lights.Color(nil), threeColors...)
	case ModeJump7:
		return append([]lights.Color(nil), sevenColors...)
	case ModeFade3:
		return fade(threeColors, fadeSteps)
	case ModeFade7:
		return fade(sevenColors, fadeSteps)
	case ModeSmooth:
		return fade(sevenColors, smoothSteps)
	case ModeAuto:
		var out []lights.Color
		for _, m := range autoSequence {
			out = append(out, frames(m, base)...)
		}
		return out
	}
	return []lights.Color{base}
}

// fade interpolates around the ring of colours, steps frames per transition.
func fade(colors []lights.Color, steps int) []lights.Color {
	out := make([]lights.Color, 0, len(colors)*steps)
	for i, from := range colors {
		to := colors[(i+1)%len(colors)]
		for s := 0; s < steps; s++ {
			out = append(out, lights.Color{
				R: interpolate(from.R, to.R, s, steps),
				G: interpolate(from.G, to.G, s, steps),
				B: interpolate(from.B, to.B, s, steps),
			})
		}
	}
	return out
}

func interpolate(start, end uint8, i, steps int) uint8 {
	if steps <= 0 {
		return end
	}
	s := int(start)
	e := int(end)
	return uint8(s + (e-s)*i/steps)
}

// frameInterval is the hold time of one frame. Faster speeds shorten it and
// fades advance four times as often as jumps.
func frameInterval(mode Mode, speed int) time.Duration {
	d := time.Duration(MaxSpeed+1-clamp(speed, MinSpeed, MaxSpeed)) * baseFrame
	switch mode {
	case ModeFade3, ModeFade7, ModeSmooth, ModeAuto:
		d /= 4
	}
	return d
}
