// cmd/encoderctl/controller.go
package main

import (
	"fmt"

	"github.com/tamzrod/tmc-encoder/internal/chopper"
	"github.com/tamzrod/tmc-encoder/internal/config"
	"github.com/tamzrod/tmc-encoder/internal/debug"
	"github.com/tamzrod/tmc-encoder/internal/encoder"
	"github.com/tamzrod/tmc-encoder/internal/regaccess"
)

// controller is everything a device command needs, built from the config file.
type controller struct {
	cfg    *config.Config
	router *regaccess.Router
	scaler *encoder.Scaler
	close  func() error
}

func openController() (*controller, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	level := cfg.DebugLevel
	if debugLevel >= 0 {
		level = debugLevel
	}
	debug.Init(level)

	router, closeFn, err := regaccess.BuildRouter(cfg.Controller)
	if err != nil {
		return nil, fmt.Errorf("register access build failed: %w", err)
	}

	view, fixed := encoderViews(cfg.Controller)

	scaler := encoder.New(router, view, chopper.Source{
		Fixed: fixed,
		Live:  chopper.Live{Regs: router},
	})

	debug.Info("config %s: %d endpoint(s), %d axis(es)",
		cfgPath, len(cfg.Controller.Endpoints), len(cfg.Controller.Axes))

	return &controller{
		cfg:    cfg,
		router: router,
		scaler: scaler,
		close:  closeFn,
	}, nil
}

// encoderViews splits the axis table into the read-only views the scaler consumes.
func encoderViews(c config.ControllerConfig) (encoder.StaticConfig, map[regaccess.Axis]uint8) {
	view := make(encoder.StaticConfig, len(c.Axes))
	fixed := make(map[regaccess.Axis]uint8)

	for _, a := range c.Axes {
		axis := regaccess.Axis(a.Axis)
		view[axis] = encoder.AxisConfig{
			MotorFullStepResolution: a.MotorFullStepResolution,
			EncoderResolution:       a.EncoderResolution,
		}
		if a.MicrostepExponent != nil {
			fixed[axis] = *a.MicrostepExponent
		}
	}
	return view, fixed
}

// axes returns the axes selected by --axis, in config order.
func (c *controller) axes() ([]regaccess.Axis, error) {
	if axisFlag >= 0 {
		if _, ok := c.cfg.Controller.Axis(axisFlag); !ok {
			return nil, fmt.Errorf("axis %d is not configured", axisFlag)
		}
		return []regaccess.Axis{regaccess.Axis(axisFlag)}, nil
	}

	out := make([]regaccess.Axis, 0, len(c.cfg.Controller.Axes))
	for _, a := range c.cfg.Controller.Axes {
		out = append(out, regaccess.Axis(a.Axis))
	}
	return out, nil
}

func (c *controller) name(axis regaccess.Axis) string {
	if a, ok := c.cfg.Controller.Axis(int(axis)); ok {
		return a.Name
	}
	return fmt.Sprintf("axis%d", axis)
}
