package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// For all r8 r, INC r; DEC r restores the byte (§8).
func TestIncDecRoundTrip(t *testing.T) {
	for _, v := range []uint8{0x00, 0x0F, 0x7F, 0xFF, 0x80} {
		c := New(&flatBus{})
		c.b = v
		c.inc8(0)
		c.dec8(0)
		assert.Equal(t, v, c.b, "INC;DEC should restore %#x", v)
	}
}

func TestIncSetsHalfCarryAndZero(t *testing.T) {
	c := New(&flatBus{})
	c.b = 0x0F
	c.inc8(0)
	assert.Equal(t, uint8(0x10), c.b)
	assert.True(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagZ))

	c.b = 0xFF
	c.inc8(0)
	assert.Equal(t, uint8(0x00), c.b)
	assert.True(t, c.flagSet(flagZ))
}

// For all byte b and bit i, SET i,b; RES i,b restores b (§8). Exercised
// through the actual CB table entries for register B (col index 0).
func TestSetResRoundTrip(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		for _, b := range []uint8{0x00, 0xFF, 0x55, 0xAA} {
			c := New(&flatBus{})
			c.b = b
			cbTable[0xC0+int(i)*8](c) // SET i,B
			cbTable[0x80+int(i)*8](c) // RES i,B
			assert.Equal(t, b, c.b, "SET %d; RES %d should restore %#x", i, i, b)
		}
	}
}

// ADD A,b; SUB A,b with initial C=0 restores A and leaves N=1, C=0.
func TestAddSubRoundTrip(t *testing.T) {
	for _, v := range []uint8{0x00, 0x01, 0x0F, 0x7F, 0xFF} {
		c := New(&flatBus{})
		c.a = 0x42
		c.clearFlag(flagC)
		c.add8(v, false)
		c.sub8(v, false, true)
		assert.Equal(t, uint8(0x42), c.a)
		assert.True(t, c.flagSet(flagN))
		assert.False(t, c.flagSet(flagC))
	}
}

// DAA after ADD A,b (BCD operands) yields BCD(A+b mod 100), C set iff
// A+b >= 100 (§8 scenario 3 and property).
func TestDAAAfterAdd(t *testing.T) {
	c := New(&flatBus{})
	c.a = 0x45
	c.clearFlag(flagC)
	c.clearFlag(flagH)
	c.clearFlag(flagN)
	c.add8(0x38, false)
	c.daa()

	assert.Equal(t, uint8(0x83), c.a)
	assert.False(t, c.flagSet(flagZ))
	assert.False(t, c.flagSet(flagN))
	assert.False(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagC))
}

func TestDAABCDProperty(t *testing.T) {
	toBCD := func(v uint8) uint8 {
		return (v/10)<<4 | (v % 10)
	}

	for a := uint8(0); a < 100; a += 7 {
		for b := uint8(0); b < 100; b += 11 {
			c := New(&flatBus{})
			c.a = toBCD(a)
			c.clearFlag(flagC)
			c.clearFlag(flagH)
			c.clearFlag(flagN)
			c.add8(toBCD(b), false)
			c.daa()

			sum := int(a) + int(b)
			assert.Equal(t, toBCD(uint8(sum%100)), c.a, "a=%d b=%d", a, b)
			assert.Equal(t, sum >= 100, c.flagSet(flagC), "a=%d b=%d", a, b)
		}
	}
}

func TestRLCAAlwaysClearsZero(t *testing.T) {
	c := New(&flatBus{})
	c.a = 0x00
	opcodeTable[0x07](c)
	assert.False(t, c.flagSet(flagZ), "RLCA must clear Z even when result is 0")
}

func TestAddHLHalfCarryOnBit11(t *testing.T) {
	c := New(&flatBus{})
	c.setHL(0x0FFF)
	c.addHL(0x0001)
	assert.Equal(t, uint16(0x1000), c.getHL())
	assert.True(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagC))
}
