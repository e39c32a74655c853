package revb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcology/ircode"
	"arcology/ircode/reva"
)

func TestTableIntegrity(t *testing.T) {
	table := Table()
	require.NoError(t, table.Validate())
	assert.Equal(t, 46, table.Len())
	assert.Equal(t, Name, table.Name())
}

func TestDiffersFromRevisionA(t *testing.T) {
	a, b := reva.Table(), Table()

	changed := map[ircode.Key]ircode.Code{
		ircode.KeyOn: 0xFF02FD,
		ircode.KeyB:  0xFFA25D,
		ircode.KeyB6: 0xFF8A75,
	}

	for _, bb := range b.Bindings() {
		if bb.Key == ircode.KeyFade7 {
			assert.Equal(t, ircode.Code(0xFFE01F), bb.Code)
			_, inA := a.Binding(ircode.KeyFade7)
			assert.False(t, inA)
			continue
		}
		ab, ok := a.Binding(bb.Key)
		require.True(t, ok, "key %s missing from revision A", bb.Key)
		if want, ok := changed[bb.Key]; ok {
			assert.Equal(t, want, bb.Code, "key %s", bb.Key)
			assert.NotEqual(t, ab.Code, bb.Code, "key %s", bb.Key)
			continue
		}
		assert.Equal(t, ab.Code, bb.Code, "key %s", bb.Key)
	}

	_, ok := b.Binding(ircode.KeyFade)
	assert.False(t, ok)
}

// TestHeaderLiterals pins every binding to its literal value.
func TestHeaderLiterals(t *testing.T) {
	tests := []struct {
		key  ircode.Key
		want ircode.Code
	}{
		{ircode.KeyBPlus, 0xF700FF},
		{ircode.KeyBMinus, 0xF7807F},
		{ircode.KeyOn, 0xFF02FD},
		{ircode.KeyOff, 0xF740BF},
		{ircode.KeyR, 0xF720DF},
		{ircode.KeyG, 0xF7A05F},
		{ircode.KeyB, 0xFFA25D},
		{ircode.KeyW, 0xF7E01F},
		{ircode.KeyB1, 0xFF2AD5},
		{ircode.KeyB2, 0xF76897},
		{ircode.KeyB3, 0xFF926D},
		{ircode.KeyB4, 0xFF12ED},
		{ircode.KeyB5, 0xFF0AF5},
		{ircode.KeyB6, 0xFF8A75},
		{ircode.KeyB7, 0xFFB24D},
		{ircode.KeyB8, 0xFF32CD},
		{ircode.KeyB9, 0xFF38C7},
		{ircode.KeyB10, 0xFFB847},
		{ircode.KeyB11, 0xFF7887},
		{ircode.KeyB12, 0xFFF807},
		{ircode.KeyB13, 0xF728D7},
		{ircode.KeyB14, 0xFF9867},
		{ircode.KeyB15, 0xFF58A7},
		{ircode.KeyB16, 0xFFD827},
		{ircode.KeyUpR, 0xFF28D7},
		{ircode.KeyUpG, 0xFFA857},
		{ircode.KeyUpB, 0xFF6897},
		{ircode.KeyQuick, 0xFFE817},
		{ircode.KeyDownR, 0xFF08F7},
		{ircode.KeyDownG, 0xFF8877},
		{ircode.KeyDownB, 0xFF48B7},
		{ircode.KeySlow, 0xFFC837},
		{ircode.KeyDIY1, 0xFF30CF},
		{ircode.KeyDIY2, 0xFFB04F},
		{ircode.KeyDIY3, 0xFF708F},
		{ircode.KeyAuto, 0xFFF00F},
		{ircode.KeyDIY4, 0xFF10EF},
		{ircode.KeyDIY5, 0xFF906F},
		{ircode.KeyDIY6, 0xFF50AF},
		{ircode.KeyFlash, 0xF7D02F},
		{ircode.KeyJump3, 0xFF20DF},
		{ircode.KeyJump7, 0xFFA05F},
		{ircode.KeyFade3, 0xFF609F},
		{ircode.KeyFade7, 0xFFE01F},
		{ircode.KeySmooth, 0xF7E817},
		{ircode.KeyStrobe, 0xF7F00F},
	}

	table := Table()
	require.Len(t, tests, table.Len())
	for i, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, ok := table.CodeFor(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.key, table.Bindings()[i].Key, "declaration order")
		})
	}
}

func TestSubstitutedCodesAreUncertain(t *testing.T) {
	table := Table()
	for _, key := range []ircode.Key{ircode.KeyOn, ircode.KeyB, ircode.KeyB6, ircode.KeyFade7} {
		b, ok := table.Binding(key)
		require.True(t, ok)
		assert.True(t, b.Uncertain, "key %s", key)
	}
	assert.Contains(t, table.Description(), "44-key remote")
}

func TestRetiredCodesDoNotResolve(t *testing.T) {
	table := Table()
	for _, c := range []ircode.Code{0xFF1AE5, 0xFF9A65} {
		_, ok := table.Lookup(c)
		assert.False(t, ok, "code %s", c)
	}
}
