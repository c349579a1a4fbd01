// internal/config/normalize.go
package config

import "fmt"

const (
	DefaultTimeoutMs      = 1000
	DefaultBaudRate       = 115200
	DefaultPollIntervalMs = 250
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	c := &cfg.Controller

	for i := range c.Endpoints {
		ep := &c.Endpoints[i]

		if ep.Transport == "" {
			ep.Transport = TransportTCP
		}
		if ep.TimeoutMs <= 0 {
			ep.TimeoutMs = DefaultTimeoutMs
		}
		if ep.Transport == TransportRTU && ep.BaudRate <= 0 {
			ep.BaudRate = DefaultBaudRate
		}
	}

	for i := range c.Axes {
		a := &c.Axes[i]
		if a.Name == "" {
			a.Name = fmt.Sprintf("axis%d", a.Axis)
		}
	}

	if c.Poll.IntervalMs <= 0 {
		c.Poll.IntervalMs = DefaultPollIntervalMs
	}
}
