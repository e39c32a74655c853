// Package revb holds revision B of the Arcology remote codes. It repeats
// revision A except for the power, blue, B6 and seven-colour fade buttons,
// which carry the codes the common 44-key remote sends. No header confirms
// those four, so their bindings are marked uncertain.
package revb

import "arcology/ircode"

const (
	BPlus  ircode.Code = 0xF700FF
	BMinus ircode.Code = 0xF7807F
	On     ircode.Code = 0xFF02FD
	Off    ircode.Code = 0xF740BF
	R      ircode.Code = 0xF720DF
	G      ircode.Code = 0xF7A05F
	B      ircode.Code = 0xFFA25D
	W      ircode.Code = 0xF7E01F
	B1     ircode.Code = 0xFF2AD5
	B2     ircode.Code = 0xF76897
	B3     ircode.Code = 0xFF926D
	B4     ircode.Code = 0xFF12ED
	B5     ircode.Code = 0xFF0AF5
	B6     ircode.Code = 0xFF8A75
	B7     ircode.Code = 0xFFB24D
	B8     ircode.Code = 0xFF32CD
	B9     ircode.Code = 0xFF38C7
	B10    ircode.Code = 0xFFB847
	B11    ircode.Code = 0xFF7887
	B12    ircode.Code = 0xFFF807
	B13    ircode.Code = 0xF728D7
	B14    ircode.Code = 0xFF9867
	B15    ircode.Code = 0xFF58A7
	B16    ircode.Code = 0xFFD827
	UpR    ircode.Code = 0xFF28D7
	UpG    ircode.Code = 0xFFA857
	UpB    ircode.Code = 0xFF6897
	Quick  ircode.Code = 0xFFE817
	DownR  ircode.Code = 0xFF08F7
	DownG  ircode.Code = 0xFF8877
	DownB  ircode.Code = 0xFF48B7
	Slow   ircode.Code = 0xFFC837
	DIY1   ircode.Code = 0xFF30CF
	DIY2   ircode.Code = 0xFFB04F
	DIY3   ircode.Code = 0xFF708F
	Auto   ircode.Code = 0xFFF00F
	DIY4   ircode.Code = 0xFF10EF
	DIY5   ircode.Code = 0xFF906F
	DIY6   ircode.Code = 0xFF50AF
	Flash  ircode.Code = 0xF7D02F
	Jump3  ircode.Code = 0xFF20DF
	Jump7  ircode.Code = 0xFFA05F
	Fade3  ircode.Code = 0xFF609F
	Fade7  ircode.Code = 0xFFE01F
	Smooth ircode.Code = 0xF7E817
	Strobe ircode.Code = 0xF7F00F
)

// Name identifies the table in the catalog.
const Name = "revision-b"

// Table returns revision B in declaration order.
func Table() *ircode.Table {
	return ircode.NewTable(Name, "revision A with power, blue, B6 and seven-colour fade taken from the common 44-key remote (unconfirmed)", []ircode.Binding{
		{Key: ircode.KeyBPlus, Code: BPlus, Note: "brightness up"},
		{Key: ircode.KeyBMinus, Code: BMinus, Note: "brightness down"},
		{Key: ircode.KeyOn, Code: On, Note: "power on", Uncertain: true},
		{Key: ircode.KeyOff, Code: Off, Note: "power off"},
		{Key: ircode.KeyR, Code: R, Note: "red", Previous: []ircode.Code{0xFF1AE5}},
		{Key: ircode.KeyG, Code: G, Note: "green", Previous: []ircode.Code{0xFF9A65}},
		{Key: ircode.KeyB, Code: B, Note: "blue", Uncertain: true},
		{Key: ircode.KeyW, Code: W, Note: "white"},
		{Key: ircode.KeyB1, Code: B1, Note: "green", Uncertain: true},
		{Key: ircode.KeyB2, Code: B2, Note: "fuchsia", Uncertain: true},
		{Key: ircode.KeyB3, Code: B3, Note: "blue", Uncertain: true},
		{Key: ircode.KeyB4, Code: B4, Note: "white", Uncertain: true},
		{Key: ircode.KeyB5, Code: B5, Note: "pea green", Uncertain: true},
		{Key: ircode.KeyB6, Code: B6, Note: "purple", Uncertain: true},
		{Key: ircode.KeyB7, Code: B7, Note: "blue", Uncertain: true},
		{Key: ircode.KeyB8, Code: B8, Note: "light blue", Uncertain: true},
		{Key: ircode.KeyB9, Code: B9, Note: "light yellow", Uncertain: true},
		{Key: ircode.KeyB10, Code: B10, Note: "light green", Uncertain: true},
		{Key: ircode.KeyB11, Code: B11, Note: "bluette", Uncertain: true},
		{Key: ircode.KeyB12, Code: B12, Note: "white", Uncertain: true},
		{Key: ircode.KeyB13, Code: B13, Note: "yellow", Uncertain: true},
		{Key: ircode.KeyB14, Code: B14, Note: "violet", Uncertain: true},
		{Key: ircode.KeyB15, Code: B15, Note: "aqua green", Uncertain: true},
		{Key: ircode.KeyB16, Code: B16, Note: "violet", Uncertain: true},
		{Key: ircode.KeyUpR, Code: UpR, Uncertain: true},
		{Key: ircode.KeyUpG, Code: UpG, Uncertain: true},
		{Key: ircode.KeyUpB, Code: UpB, Uncertain: true},
		{Key: ircode.KeyQuick, Code: Quick, Uncertain: true},
		{Key: ircode.KeyDownR, Code: DownR, Uncertain: true},
		{Key: ircode.KeyDownG, Code: DownG, Uncertain: true},
		{Key: ircode.KeyDownB, Code: DownB, Uncertain: true},
		{Key: ircode.KeySlow, Code: Slow, Note: "slower transition", Uncertain: true},
		{Key: ircode.KeyDIY1, Code: DIY1, Uncertain: true},
		{Key: ircode.KeyDIY2, Code: DIY2, Uncertain: true},
		{Key: ircode.KeyDIY3, Code: DIY3, Uncertain: true},
		{Key: ircode.KeyAuto, Code: Auto, Uncertain: true},
		{Key: ircode.KeyDIY4, Code: DIY4, Uncertain: true},
		{Key: ircode.KeyDIY5, Code: DIY5, Uncertain: true},
		{Key: ircode.KeyDIY6, Code: DIY6, Uncertain: true},
		{Key: ircode.KeyFlash, Code: Flash},
		{Key: ircode.KeyJump3, Code: Jump3, Uncertain: true},
		{Key: ircode.KeyJump7, Code: Jump7, Uncertain: true},
		{Key: ircode.KeyFade3, Code: Fade3, Note: "soft transition", Uncertain: true},
		{Key: ircode.KeyFade7, Code: Fade7, Note: "soft transition", Uncertain: true},
		{Key: ircode.KeySmooth, Code: Smooth, Note: "smooth"},
		{Key: ircode.KeyStrobe, Code: Strobe, Note: "strobe"},
	})
}
