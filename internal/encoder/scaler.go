// internal/encoder/scaler.go
package encoder

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/tamzrod/tmc-encoder/internal/debug"
	"github.com/tamzrod/tmc-encoder/internal/regaccess"
	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

// AxisConfig is the per-axis encoder configuration. Zero in either field
// means no scaling is requested.
type AxisConfig struct {
	MotorFullStepResolution uint32
	EncoderResolution       int32 // sign encodes encoder direction
}

// ConfigView is a read-only view of per-axis encoder configuration.
type ConfigView interface {
	EncoderConfig(axis regaccess.Axis) AxisConfig
}

// StaticConfig is a fixed ConfigView. Missing axes read as the zero value (1:1).
type StaticConfig map[regaccess.Axis]AxisConfig

func (s StaticConfig) EncoderConfig(axis regaccess.Axis) AxisConfig {
	return s[axis]
}

// MicrostepSource supplies the current CHOPCONF.mres of an axis.
type MicrostepSource interface {
	MicrostepExponent(axis regaccess.Axis) (uint8, error)
}

// Scaler keeps ENCMODE.enc_sel_decimal and ENC_CONST consistent with the
// motor microstep resolution. ENCMODE is read-modify-written under a per-axis
// lock, so concurrent calls for one axis never interleave their updates.
type Scaler struct {
	regs   regaccess.Registers
	cfg    ConfigView
	msteps MicrostepSource

	mu    sync.Mutex
	locks map[regaccess.Axis]*sync.Mutex
}

func New(regs regaccess.Registers, cfg ConfigView, msteps MicrostepSource) *Scaler {
	return &Scaler{
		regs:   regs,
		cfg:    cfg,
		msteps: msteps,
		locks:  make(map[regaccess.Axis]*sync.Mutex),
	}
}

// InitializeDefault writes ENC_CONST = 1.0 (binary). Only ENC_CONST is touched.
func (s *Scaler) InitializeDefault(axis regaccess.Axis) error {
	l := s.lock(axis)
	l.Lock()
	defer l.Unlock()

	if err := s.regs.WriteRegister(axis, tmc.ENC_CONST, UnityPrescaler); err != nil {
		return fmt.Errorf("encoder: init axis %d: %w", axis, err)
	}
	return nil
}

// InitializeAll runs InitializeDefault on every axis and reports all failures.
func (s *Scaler) InitializeAll(axes []regaccess.Axis) error {
	var err error
	for _, a := range axes {
		err = multierr.Append(err, s.InitializeDefault(a))
	}
	return err
}

// CalculateEncoderParameters computes the prescaler for the axis' current
// configuration and microstep resolution and writes the mode flag and
// ENC_CONST, in that order. The applied pair is returned.
func (s *Scaler) CalculateEncoderParameters(axis regaccess.Axis) (Params, error) {
	c := s.cfg.EncoderConfig(axis)

	var p Params
	if c.MotorFullStepResolution == 0 || c.EncoderResolution == 0 {
		debug.Verbose("axis %d: zero resolution (motor=%d encoder=%d), selecting 1:1",
			axis, c.MotorFullStepResolution, c.EncoderResolution)
		p = Unity
	} else {
		mres, err := s.msteps.MicrostepExponent(axis)
		if err != nil {
			return Params{}, fmt.Errorf("encoder: axis %d: %w", axis, err)
		}
		p = Compute(c.MotorFullStepResolution, mres, c.EncoderResolution)
		debug.Verbose("axis %d: motor=%d mres=%d encoder=%d -> %s",
			axis, c.MotorFullStepResolution, mres, c.EncoderResolution, p)
	}

	if err := s.apply(axis, p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// GetEncoderPosition returns X_ENC unchanged.
func (s *Scaler) GetEncoderPosition(axis regaccess.Axis) (int32, error) {
	return s.regs.ReadRegister(axis, tmc.X_ENC)
}

// SetEncoderPosition overwrites X_ENC, e.g. to re-home the encoder counter.
func (s *Scaler) SetEncoderPosition(axis regaccess.Axis, value int32) error {
	return s.regs.WriteRegister(axis, tmc.X_ENC, value)
}

// ReadState reads back the pair currently held by the device.
func (s *Scaler) ReadState(axis regaccess.Axis) (Params, error) {
	l := s.lock(axis)
	l.Lock()
	defer l.Unlock()

	mode, err := s.regs.ReadRegister(axis, tmc.ENCMODE)
	if err != nil {
		return Params{}, fmt.Errorf("encoder: axis %d: %w", axis, err)
	}
	prescaler, err := s.regs.ReadRegister(axis, tmc.ENC_CONST)
	if err != nil {
		return Params{}, fmt.Errorf("encoder: axis %d: %w", axis, err)
	}

	return Params{
		Decimal:   uint32(mode)&tmc.ENCMODE_DECIMAL != 0,
		Prescaler: prescaler,
	}, nil
}

func (s *Scaler) apply(axis regaccess.Axis, p Params) error {
	l := s.lock(axis)
	l.Lock()
	defer l.Unlock()

	mode, err := s.regs.ReadRegister(axis, tmc.ENCMODE)
	if err != nil {
		return fmt.Errorf("encoder: axis %d: %w", axis, err)
	}

	var flag uint32
	if p.Decimal {
		flag = 1
	}
	mode = int32(tmc.SetField(uint32(mode), tmc.ENCMODE_DECIMAL, flag))

	if err := s.regs.WriteRegister(axis, tmc.ENCMODE, mode); err != nil {
		return fmt.Errorf("encoder: axis %d: %w", axis, err)
	}
	if err := s.regs.WriteRegister(axis, tmc.ENC_CONST, p.Prescaler); err != nil {
		return fmt.Errorf("encoder: axis %d: %w", axis, err)
	}
	return nil
}

func (s *Scaler) lock(axis regaccess.Axis) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[axis]
	if !ok {
		l = &sync.Mutex{}
		s.locks[axis] = l
	}
	return l
}
