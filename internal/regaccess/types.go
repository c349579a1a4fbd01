// internal/regaccess/types.go
package regaccess

import (
	"errors"

	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

// Axis selects one motor+encoder pair and, through it, one driver device.
type Axis int

// Registers is the register access contract consumed by the encoder logic.
// A read always reflects the most recent write. A write replaces the whole
// 32-bit register.
type Registers interface {
	ReadRegister(axis Axis, reg tmc.Register) (int32, error)
	WriteRegister(axis Axis, reg tmc.Register, value int32) error
}

// EndpointClient is the exact holding-register contract the router uses.
// One client serves every axis wired behind the same endpoint.
type EndpointClient interface {
	ReadRegisters(unitID uint8, addr, qty uint16) ([]uint16, error)
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

var (
	ErrUnknownAxis = errors.New("regaccess: unknown axis")
	ErrClosed      = errors.New("regaccess: router closed")
)
