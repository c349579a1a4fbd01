// internal/regaccess/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/tmc-encoder/internal/debug"
)

// EndpointClient is a single connection (TCP socket or serial line) to one
// Modbus endpoint. It serializes requests because it mutates SlaveId per call.
type EndpointClient struct {
	mu       sync.Mutex
	closer   io.Closer
	setSlave func(uint8)
	client   modbus.Client
}

type Config struct {
	Transport string // "tcp" (default) or "rtu"
	Address   string // host:port or serial device
	BaudRate  int    // rtu only
	Timeout   time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("regaccess modbus: address required")
	}

	switch cfg.Transport {
	case "", "tcp":
		h := modbus.NewTCPClientHandler(cfg.Address)
		h.Timeout = cfg.Timeout
		h.Logger = debug.Logger()

		if err := h.Connect(); err != nil {
			return nil, err
		}
		return newEndpointClient(modbus.NewClient(h), h, func(id uint8) { h.SlaveId = id }), nil

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Address)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		h.Logger = debug.Logger()

		if err := h.Connect(); err != nil {
			return nil, err
		}
		return newEndpointClient(modbus.NewClient(h), h, func(id uint8) { h.SlaveId = id }), nil

	default:
		return nil, fmt.Errorf("regaccess modbus: unsupported transport %q", cfg.Transport)
	}
}

func newEndpointClient(client modbus.Client, closer io.Closer, setSlave func(uint8)) *EndpointClient {
	return &EndpointClient{
		closer:   closer,
		setSlave: setSlave,
		client:   client,
	}
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// ReadRegisters reads qty holding registers (FC 3).
func (c *EndpointClient) ReadRegisters(unitID uint8, addr, qty uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(unitID)

	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw) != 2*int(qty) {
		return nil, fmt.Errorf("regaccess modbus: read %d registers: got %d bytes", qty, len(raw))
	}
	return unpackRegisters(raw), nil
}

// WriteRegisters writes holding registers in one request (FC 16), so a
// 32-bit TMC register is never left half written by this client.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(unitID)

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
