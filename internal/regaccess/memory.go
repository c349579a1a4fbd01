// internal/regaccess/memory.go
package regaccess

import (
	"fmt"
	"sync"
)

// MemoryEndpoint is an in-process holding-register space, one per unit id.
// It backs the "memory" transport and stands in for a bus in tests.
type MemoryEndpoint struct {
	mu    sync.Mutex
	units map[uint8]map[uint16]uint16
}

func NewMemoryEndpoint() *MemoryEndpoint {
	return &MemoryEndpoint{units: make(map[uint8]map[uint16]uint16)}
}

func (m *MemoryEndpoint) ReadRegisters(unitID uint8, addr, qty uint16) ([]uint16, error) {
	if int(addr)+int(qty) > 0x10000 {
		return nil, fmt.Errorf("memory endpoint: read %d+%d past end of address space", addr, qty)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]uint16, qty)
	unit := m.units[unitID]
	for i := range out {
		out[i] = unit[addr+uint16(i)]
	}
	return out, nil
}

func (m *MemoryEndpoint) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if int(addr)+len(regs) > 0x10000 {
		return fmt.Errorf("memory endpoint: write %d+%d past end of address space", addr, len(regs))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	unit := m.units[unitID]
	if unit == nil {
		unit = make(map[uint16]uint16)
		m.units[unitID] = unit
	}
	for i, r := range regs {
		unit[addr+uint16(i)] = r
	}
	return nil
}

func (m *MemoryEndpoint) Close() error { return nil }
