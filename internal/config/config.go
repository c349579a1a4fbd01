// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DebugLevel int              `yaml:"debug_level"` // 0=off 1=info 2=verbose 3=trace
	Controller ControllerConfig `yaml:"controller"`
}

type ControllerConfig struct {
	Endpoints []EndpointConfig `yaml:"endpoints"`
	Axes      []AxisConfig     `yaml:"axes"`
	Poll      PollConfig       `yaml:"poll"`
}

// ---- ENDPOINT ----

// Transport names accepted in endpoint.transport.
const (
	TransportTCP    = "tcp"
	TransportRTU    = "rtu"
	TransportMemory = "memory" // in-process register file, no hardware
)

type EndpointConfig struct {
	ID        string `yaml:"id"`
	Transport string `yaml:"transport"`
	Address   string `yaml:"address"`   // host:port (tcp) or serial device (rtu)
	BaudRate  int    `yaml:"baud_rate"` // rtu only
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- AXIS ----

type AxisConfig struct {
	Axis        int    `yaml:"axis"`
	Name        string `yaml:"name"`
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"` // first holding register of the TMC register window

	// 0 in either field selects 1:1 encoder scaling.
	MotorFullStepResolution uint32 `yaml:"motor_fullstep_resolution"`
	EncoderResolution       int32  `yaml:"encoder_resolution"` // negative = encoder counts against motor direction

	// Optional: fixed CHOPCONF.mres. nil = read live from the driver.
	MicrostepExponent *uint8 `yaml:"microstep_exponent"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// Load reads a YAML file. It does not validate; callers run Validate then Normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	return &cfg, nil
}

// Endpoint returns the endpoint with the given id.
func (c *ControllerConfig) Endpoint(id string) (EndpointConfig, bool) {
	for _, ep := range c.Endpoints {
		if ep.ID == id {
			return ep, true
		}
	}
	return EndpointConfig{}, false
}

// Axis returns the axis with the given number.
func (c *ControllerConfig) Axis(n int) (AxisConfig, bool) {
	for _, a := range c.Axes {
		if a.Axis == n {
			return a, true
		}
	}
	return AxisConfig{}, false
}
