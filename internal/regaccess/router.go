// internal/regaccess/router.go
package regaccess

import (
	"fmt"
	"sync"

	"github.com/tamzrod/tmc-encoder/internal/debug"
	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

// Route is where one axis' TMC register file lives on a holding-register bus.
// TMC register a occupies holding registers base+2a (high word) and base+2a+1 (low word).
type Route struct {
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
}

// Router implements Registers on top of one or more endpoint clients.
type Router struct {
	mu      sync.RWMutex
	routes  map[Axis]Route
	clients map[string]EndpointClient
	closed  bool
}

// NewRouter builds a router from a static axis table.
// Every route must reference a client present in clients.
func NewRouter(routes map[Axis]Route, clients map[string]EndpointClient) (*Router, error) {
	for axis, r := range routes {
		if clients[r.Endpoint] == nil {
			return nil, fmt.Errorf("regaccess: axis %d: missing client for endpoint %s", axis, r.Endpoint)
		}
	}

	rt := &Router{
		routes:  make(map[Axis]Route, len(routes)),
		clients: clients,
	}
	for axis, r := range routes {
		rt.routes[axis] = r
	}
	return rt, nil
}

func (rt *Router) ReadRegister(axis Axis, reg tmc.Register) (int32, error) {
	cli, r, err := rt.lookup(axis)
	if err != nil {
		return 0, err
	}

	regs, err := cli.ReadRegisters(r.UnitID, holdingAddr(r, reg), 2)
	if err != nil {
		return 0, fmt.Errorf("regaccess: read axis=%d %s: %w", axis, reg, err)
	}
	if len(regs) != 2 {
		return 0, fmt.Errorf("regaccess: read axis=%d %s: got %d words, want 2", axis, reg, len(regs))
	}

	value := int32(uint32(regs[0])<<16 | uint32(regs[1]))
	debug.Register("read", int(axis), reg.String(), value)
	return value, nil
}

func (rt *Router) WriteRegister(axis Axis, reg tmc.Register, value int32) error {
	cli, r, err := rt.lookup(axis)
	if err != nil {
		return err
	}

	debug.Register("write", int(axis), reg.String(), value)

	u := uint32(value)
	if err := cli.WriteRegisters(r.UnitID, holdingAddr(r, reg), []uint16{uint16(u >> 16), uint16(u)}); err != nil {
		return fmt.Errorf("regaccess: write axis=%d %s: %w", axis, reg, err)
	}
	return nil
}

// Close marks the router closed. Endpoint lifecycles belong to the builder.
func (rt *Router) Close() {
	rt.mu.Lock()
	rt.closed = true
	rt.mu.Unlock()
}

func (rt *Router) lookup(axis Axis) (EndpointClient, Route, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if rt.closed {
		return nil, Route{}, ErrClosed
	}
	r, ok := rt.routes[axis]
	if !ok {
		return nil, Route{}, fmt.Errorf("%w: %d", ErrUnknownAxis, axis)
	}
	return rt.clients[r.Endpoint], r, nil
}

func holdingAddr(r Route, reg tmc.Register) uint16 {
	return r.BaseAddress + 2*uint16(reg)
}
