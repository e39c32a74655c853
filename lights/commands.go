package lights

// Controller frames are nine bytes framed by frameStart and frameEnd.
const (
	frameStart byte = 0x7e
	frameEnd   byte = 0xef

	cmdPower byte = 0x04
	cmdColor byte = 0x05
)

func powerFrame(on bool) []byte {
	state := byte(0x00)
	if on {
		state = 0xf0
	}
	return []byte{frameStart, 0x00, cmdPower, state, 0x00, 0x01, 0xff, 0x00, frameEnd}
}

func colorFrame(c Color) []byte {
	return []byte{frameStart, 0x00, cmdColor, 0x03, c.R, c.G, c.B, 0x00, frameEnd}
}
