// internal/encoder/params.go
package encoder

import (
	"fmt"
	"math"
)

// Fixed-point layout of ENC_CONST.
const (
	// UnityPrescaler is 1.0 in binary mode (16 fractional bits).
	UnityPrescaler int32 = 1 << 16

	binaryScale  = 65536.0
	decimalScale = 10000
)

// Params is the (ENCMODE.enc_sel_decimal, ENC_CONST) pair.
// The two are only meaningful together.
type Params struct {
	Decimal   bool
	Prescaler int32
}

// Unity is 1:1 scaling.
var Unity = Params{Decimal: false, Prescaler: UnityPrescaler}

// Compute derives the prescaler that maps encoder counts onto microsteps.
//
// fullSteps is full steps per reference unit, mres the CHOPCONF microstep
// exponent (microsteps = 2^(8-mres)) and encRes the encoder counts per the
// same unit, negative when the encoder counts against the motor direction.
// A zero resolution on either side selects Unity.
func Compute(fullSteps uint32, mres uint8, encRes int32) Params {
	if fullSteps == 0 || encRes == 0 {
		return Unity
	}

	motorSteps := (int64(1) << (8 - uint(mres))) * int64(fullSteps)
	ratio := float64(motorSteps) / math.Abs(float64(encRes))

	// Exact float comparison: no tolerance band, the device mode boundary
	// sits exactly where the binary product stops being integral.
	scaled := ratio * binaryScale
	if _, frac := math.Modf(scaled); frac == 0 {
		p := int64(scaled)
		if encRes < 0 {
			p = -p
		}
		return Params{Decimal: false, Prescaler: int32(p)}
	}

	ip, fp := math.Modf(ratio)
	i := int64(ip)
	f := int64(math.Round(fp * decimalScale))

	// A field of 10000 is written unchanged, no carry into the integer half.
	var hi, lo int64
	if encRes > 0 {
		hi, lo = i, f
	} else {
		hi, lo = -i-1, decimalScale-f
	}

	return Params{Decimal: true, Prescaler: int32(uint32(hi)<<16 | uint32(lo))}
}

// IntegerPart returns the signed upper 16 bits of a decimal-mode prescaler.
func (p Params) IntegerPart() int16 {
	return int16(p.Prescaler >> 16)
}

// FractionPart returns the lower 16 bits of a decimal-mode prescaler.
func (p Params) FractionPart() uint16 {
	return uint16(uint32(p.Prescaler))
}

// Ratio decodes the pair back to the signed scaling factor the device applies.
func (p Params) Ratio() float64 {
	if !p.Decimal {
		return float64(p.Prescaler) / binaryScale
	}
	return float64(p.IntegerPart()) + float64(p.FractionPart())/decimalScale
}

func (p Params) String() string {
	if p.Decimal {
		return fmt.Sprintf("decimal [%d|%04d] (0x%08X, ratio %.4f)",
			p.IntegerPart(), p.FractionPart(), uint32(p.Prescaler), p.Ratio())
	}
	return fmt.Sprintf("binary %d/65536 (0x%08X, ratio %.6f)", p.Prescaler, uint32(p.Prescaler), p.Ratio())
}
