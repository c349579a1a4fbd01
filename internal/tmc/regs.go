// internal/tmc/regs.go
package tmc

import (
	"fmt"
	"math/bits"
)

// Register is a TMC5160 register address (7 bit).
type Register uint8

// TMC5160 registers touched by the encoder path.
const (
	ENCMODE   Register = 0x38 // Encoder configuration and use of N channel
	X_ENC     Register = 0x39 // Actual encoder position (signed)
	ENC_CONST Register = 0x3A // Accumulation constant
	CHOPCONF  Register = 0x6C // Chopper configuration
)

// RegisterCount is the size of the TMC5160 address space.
const RegisterCount = 0x80

// ENCMODE bit definitions.
const (
	ENCMODE_POL_A       uint32 = 1 << 0
	ENCMODE_POL_B       uint32 = 1 << 1
	ENCMODE_POL_N       uint32 = 1 << 2
	ENCMODE_IGNORE_AB   uint32 = 1 << 3
	ENCMODE_CLR_CONT    uint32 = 1 << 4
	ENCMODE_CLR_ONCE    uint32 = 1 << 5
	ENCMODE_POS_EDGE    uint32 = 1 << 6
	ENCMODE_NEG_EDGE    uint32 = 1 << 7
	ENCMODE_CLR_ENC_X   uint32 = 1 << 8
	ENCMODE_LATCH_X_ACT uint32 = 1 << 9
	ENCMODE_DECIMAL     uint32 = 1 << 10 // enc_sel_decimal
)

// CHOPCONF fields.
const (
	CHOPCONF_TOFF uint32 = 0x0F << 0
	CHOPCONF_MRES uint32 = 0x0F << 24 // microsteps = 256 >> mres
)

var registerNames = map[Register]string{
	ENCMODE:   "ENCMODE",
	X_ENC:     "X_ENC",
	ENC_CONST: "ENC_CONST",
	CHOPCONF:  "CHOPCONF",
}

func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REG_0x%02X", uint8(r))
}

// GetField extracts the field selected by mask from a register value.
func GetField(value, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	return (value & mask) >> bits.TrailingZeros32(mask)
}

// SetField replaces the field selected by mask and returns the new register value.
// Bits outside mask are preserved.
func SetField(value, mask, field uint32) uint32 {
	if mask == 0 {
		return value
	}
	return (value &^ mask) | ((field << bits.TrailingZeros32(mask)) & mask)
}

// MaxMRES is the largest defined CHOPCONF.mres value (full step).
// 9..15 are reserved.
const MaxMRES = 8

// MicrostepsFromMRES returns microsteps per full step for a CHOPCONF.mres value.
func MicrostepsFromMRES(mres uint8) uint32 {
	if mres > MaxMRES {
		return 0
	}
	return 256 >> mres
}
