// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

// holdingRegsPerAxis is the Modbus window one TMC register file occupies:
// two 16-bit holding registers per TMC register.
const holdingRegsPerAxis = tmc.RegisterCount * 2

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if cfg.DebugLevel < 0 || cfg.DebugLevel > 3 {
		return fmt.Errorf("debug_level must be between 0 and 3, got %d", cfg.DebugLevel)
	}

	c := cfg.Controller

	// ------------------------------------------------------------
	// ENDPOINTS
	// ------------------------------------------------------------

	endpoints := make(map[string]EndpointConfig)

	for _, ep := range c.Endpoints {
		if ep.ID == "" {
			return errors.New("endpoint: id required")
		}
		if _, exists := endpoints[ep.ID]; exists {
			return fmt.Errorf("endpoint %q: duplicate id", ep.ID)
		}

		switch ep.Transport {
		case "", TransportTCP, TransportRTU:
			if ep.Address == "" {
				return fmt.Errorf("endpoint %q: address required", ep.ID)
			}
		case TransportMemory:
		default:
			return fmt.Errorf("endpoint %q: unknown transport %q", ep.ID, ep.Transport)
		}

		if ep.TimeoutMs < 0 {
			return fmt.Errorf("endpoint %q: timeout_ms must be >= 0", ep.ID)
		}

		endpoints[ep.ID] = ep
	}

	// ------------------------------------------------------------
	// AXES
	// ------------------------------------------------------------

	if len(c.Axes) == 0 {
		return errors.New("controller: at least one axis required")
	}

	axes := make(map[int]struct{})

	for _, a := range c.Axes {
		if a.Axis < 0 || a.Axis > 255 {
			return fmt.Errorf("axis %d: out of range 0-255", a.Axis)
		}
		if _, exists := axes[a.Axis]; exists {
			return fmt.Errorf("axis %d: duplicate axis number", a.Axis)
		}
		axes[a.Axis] = struct{}{}

		if _, ok := endpoints[a.Endpoint]; !ok {
			return fmt.Errorf("axis %d: unknown endpoint %q", a.Axis, a.Endpoint)
		}

		if a.MicrostepExponent != nil && *a.MicrostepExponent > tmc.MaxMRES {
			return fmt.Errorf(
				"axis %d: microstep_exponent must be between 0 and 8, got %d",
				a.Axis,
				*a.MicrostepExponent,
			)
		}

		if int(a.BaseAddress)+holdingRegsPerAxis-1 > 0xFFFF {
			return fmt.Errorf(
				"axis %d: base_address %d leaves no room for %d holding registers",
				a.Axis,
				a.BaseAddress,
				holdingRegsPerAxis,
			)
		}
	}

	// ------------------------------------------------------------
	// REGISTER WINDOW GEOMETRY
	// ------------------------------------------------------------

	type span struct {
		start int
		end   int
		axis  int
	}

	// key = endpoint | unit_id
	spans := make(map[string][]span)

	for _, a := range c.Axes {
		start := int(a.BaseAddress)
		end := start + holdingRegsPerAxis - 1

		key := fmt.Sprintf("%s|%d", a.Endpoint, a.UnitID)

		for _, s := range spans[key] {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"register window overlap: endpoint=%s unit_id=%d axis %d range=%d-%d overlaps with axis %d range=%d-%d",
					a.Endpoint,
					a.UnitID,
					a.Axis,
					start,
					end,
					s.axis,
					s.start,
					s.end,
				)
			}
		}

		spans[key] = append(spans[key], span{
			start: start,
			end:   end,
			axis:  a.Axis,
		})
	}

	if c.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must be >= 0, got %d", c.Poll.IntervalMs)
	}

	return nil
}
