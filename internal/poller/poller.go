// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/tmc-encoder/internal/regaccess"
)

// PositionReader abstracts the encoder position read the poller needs.
type PositionReader interface {
	GetEncoderPosition(axis regaccess.Axis) (int32, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string
	Interval time.Duration
	Axes     []regaccess.Axis
}

// Poller is a dumb, clock-driven position reader.
type Poller struct {
	cfg    Config
	reader PositionReader
}

// New creates a poller with immutable config.
func New(cfg Config, reader PositionReader) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Axes) == 0 {
		return nil, errors.New("poller: at least one axis required")
	}
	if reader == nil {
		return nil, errors.New("poller: reader required")
	}
	return &Poller{cfg: cfg, reader: reader}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		Name: p.cfg.Name,
		At:   time.Now(),
	}

	positions := make([]AxisPosition, 0, len(p.cfg.Axes))

	for _, axis := range p.cfg.Axes {
		pos, err := p.reader.GetEncoderPosition(axis)
		if err != nil {
			res.Err = fmt.Errorf("poller: axis %d: %w", axis, err)
			return res
		}
		positions = append(positions, AxisPosition{Axis: axis, Position: pos})
	}

	// Commit only if all reads succeeded
	res.Positions = positions
	return res
}
