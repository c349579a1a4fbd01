// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/tmc-encoder/internal/regaccess"
)

// AxisPosition is the raw X_ENC value of one axis.
type AxisPosition struct {
	Axis     regaccess.Axis
	Position int32
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Name string
	At   time.Time

	Positions []AxisPosition
	Err       error // non-nil means the poll cycle failed
}
