package ircode

import "strings"

// Key is the symbolic name of a remote button. The values are the names the
// controller firmware uses for them.
type Key string

// Button names shared by both remote revisions.
const (
	KeyBPlus  Key = "IR_BPlus"
	KeyBMinus Key = "IR_BMinus"
	KeyOn     Key = "IR_ON"
	KeyOff    Key = "IR_OFF"

	KeyR Key = "IR_R"
	KeyG Key = "IR_G"
	KeyB Key = "IR_B"
	KeyW Key = "IR_W"

	KeyB1  Key = "IR_B1"
	KeyB2  Key = "IR_B2"
	KeyB3  Key = "IR_B3"
	KeyB4  Key = "IR_B4"
	KeyB5  Key = "IR_B5"
	KeyB6  Key = "IR_B6"
	KeyB7  Key = "IR_B7"
	KeyB8  Key = "IR_B8"
	KeyB9  Key = "IR_B9"
	KeyB10 Key = "IR_B10"
	KeyB11 Key = "IR_B11"
	KeyB12 Key = "IR_B12"
	KeyB13 Key = "IR_B13"
	KeyB14 Key = "IR_B14"
	KeyB15 Key = "IR_B15"
	KeyB16 Key = "IR_B16"

	KeyUpR   Key = "IR_UPR"
	KeyUpG   Key = "IR_UPG"
	KeyUpB   Key = "IR_UPB"
	KeyDownR Key = "IR_DOWNR"
	KeyDownG Key = "IR_DOWNG"
	KeyDownB Key = "IR_DOWNB"

	KeyQuick Key = "IR_QUICK"
	KeySlow  Key = "IR_SLOW"

	KeyDIY1 Key = "IR_DIY1"
	KeyDIY2 Key = "IR_DIY2"
	KeyDIY3 Key = "IR_DIY3"
	KeyDIY4 Key = "IR_DIY4"
	KeyDIY5 Key = "IR_DIY5"
	KeyDIY6 Key = "IR_DIY6"

	KeyAuto   Key = "IR_AUTO"
	KeyFlash  Key = "IR_FLASH"
	KeyJump3  Key = "IR_JUMP3"
	KeyJump7  Key = "IR_JUMP7"
	KeyFade3  Key = "IR_FADE3"
	KeyFade   Key = "IR_FADE"
	KeyFade7  Key = "IR_FADE7"
	KeySmooth Key = "IR_SMOOTH"
	KeyStrobe Key = "IR_STROBE"
)

// Kind groups keys by what they do to the controller.
type Kind int

const (
	KindUnknown Kind = iota
	KindPower
	KindBrightness
	KindColor
	KindChannel
	KindSpeed
	KindDIY
	KindAuto
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindPower:
		return "power"
	case KindBrightness:
		return "brightness"
	case KindColor:
		return "color"
	case KindChannel:
		return "channel"
	case KindSpeed:
		return "speed"
	case KindDIY:
		return "diy"
	case KindAuto:
		return "auto"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

var diySlots = map[Key]int{
	KeyDIY1: 1, KeyDIY2: 2, KeyDIY3: 3,
	KeyDIY4: 4, KeyDIY5: 5, KeyDIY6: 6,
}

// Kind classifies the key.
func (k Key) Kind() Kind {
	switch k {
	case KeyOn, KeyOff:
		return KindPower
	case KeyBPlus, KeyBMinus:
		return KindBrightness
	case KeyUpR, KeyUpG, KeyUpB, KeyDownR, KeyDownG, KeyDownB:
		return KindChannel
	case KeyQuick, KeySlow:
		return KindSpeed
	case KeyAuto:
		return KindAuto
	case KeyFlash, KeyJump3, KeyJump7, KeyFade3, KeyFade, KeyFade7, KeySmooth, KeyStrobe:
		return KindEffect
	}
	if _, ok := diySlots[k]; ok {
		return KindDIY
	}
	switch k {
	case KeyR, KeyG, KeyB, KeyW:
		return KindColor
	}
	if strings.HasPrefix(string(k), "IR_B") && len(k) > len("IR_B") {
		n := string(k[len("IR_B"):])
		if n[0] >= '1' && n[0] <= '9' {
			return KindColor
		}
	}
	return KindUnknown
}

// Slot returns the DIY slot number 1..6 for DIY keys and 0 otherwise.
func (k Key) Slot() int {
	return diySlots[k]
}

// Repeatable reports whether holding the button should repeat its action.
func (k Key) Repeatable() bool {
	switch k.Kind() {
	case KindBrightness, KindChannel, KindSpeed:
		return true
	}
	return false
}
