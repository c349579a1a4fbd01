// internal/regaccess/builder.go
package regaccess

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	cfg "github.com/tamzrod/tmc-encoder/internal/config"
	rmodbus "github.com/tamzrod/tmc-encoder/internal/regaccess/modbus"
)

type endpointCloser interface {
	EndpointClient
	Close() error
}

// BuildRouter creates one client per endpoint referenced by an axis and wires
// every axis to its client. Assumes config has passed Validate and Normalize.
func BuildRouter(c cfg.ControllerConfig) (*Router, func() error, error) {
	used := map[string]struct{}{}
	for _, a := range c.Axes {
		used[a.Endpoint] = struct{}{}
	}

	clients := make(map[string]EndpointClient)
	var closers []func() error

	closeAll := func() error {
		var err error
		for _, fn := range closers {
			err = multierr.Append(err, fn())
		}
		return err
	}

	for id := range used {
		ep, ok := c.Endpoint(id)
		if !ok {
			_ = closeAll()
			return nil, nil, fmt.Errorf("regaccess: unknown endpoint %q", id)
		}

		cli, err := newEndpoint(ep)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("regaccess: endpoint %q: %w", id, err)
		}
		clients[id] = cli
		closers = append(closers, cli.Close)
	}

	routes := make(map[Axis]Route, len(c.Axes))
	for _, a := range c.Axes {
		routes[Axis(a.Axis)] = Route{
			Endpoint:    a.Endpoint,
			UnitID:      a.UnitID,
			BaseAddress: a.BaseAddress,
		}
	}

	rt, err := NewRouter(routes, clients)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}

	return rt, func() error {
		rt.Close()
		return closeAll()
	}, nil
}

func newEndpoint(ep cfg.EndpointConfig) (endpointCloser, error) {
	switch ep.Transport {
	case cfg.TransportMemory:
		return NewMemoryEndpoint(), nil
	case cfg.TransportTCP, cfg.TransportRTU:
		return rmodbus.NewEndpointClient(rmodbus.Config{
			Transport: ep.Transport,
			Address:   ep.Address,
			BaudRate:  ep.BaudRate,
			Timeout:   time.Duration(ep.TimeoutMs) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unsupported transport %q", ep.Transport)
	}
}
