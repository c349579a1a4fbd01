// internal/chopper/microstep.go
package chopper

import (
	"fmt"

	"github.com/tamzrod/tmc-encoder/internal/debug"
	"github.com/tamzrod/tmc-encoder/internal/regaccess"
	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

// Live reads the microstep resolution exponent (CHOPCONF.mres) from the
// driver on every call. Nothing is cached: the chopper subsystem owns the value.
type Live struct {
	Regs regaccess.Registers
}

// MicrostepExponent returns mres such that microsteps per full step = 2^(8-mres).
func (l Live) MicrostepExponent(axis regaccess.Axis) (uint8, error) {
	v, err := l.Regs.ReadRegister(axis, tmc.CHOPCONF)
	if err != nil {
		return 0, fmt.Errorf("chopper: read mres: %w", err)
	}
	mres := uint8(tmc.GetField(uint32(v), tmc.CHOPCONF_MRES))
	if mres > tmc.MaxMRES {
		debug.Verbose("axis %d: CHOPCONF.mres=%d is reserved (CHOPCONF=0x%08X)", axis, mres, uint32(v))
	}
	return mres, nil
}

// Source resolves the exponent from a fixed per-axis table first and falls
// back to the live driver value for axes without an entry.
type Source struct {
	Fixed map[regaccess.Axis]uint8
	Live  Live
}

func (s Source) MicrostepExponent(axis regaccess.Axis) (uint8, error) {
	if mres, ok := s.Fixed[axis]; ok {
		return mres, nil
	}
	if s.Live.Regs == nil {
		return 0, fmt.Errorf("chopper: axis %d: no fixed mres and no driver access", axis)
	}
	return s.Live.MicrostepExponent(axis)
}
