// internal/debug/debug.go
package debug

import (
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Startup, calibration results
	LevelVerbose = 2 // Encoding decisions, per-axis steps
	LevelTrace   = 3 // Every register access
)

var (
	level  int
	logger *log.Logger
	out    io.Writer = os.Stderr
)

// Init sets the debug level (0-3). Output goes to stderr so command output
// on stdout stays machine readable.
func Init(debugLevel int) {
	level = debugLevel
	if level > LevelOff {
		logger = log.New(out, "[encoderctl] ", log.LstdFlags|log.Lmicroseconds)
	} else {
		logger = nil
	}
}

// SetOutput redirects debug output. Nil restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	out = w
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// Logger returns the underlying logger when trace output is enabled, nil otherwise.
// Transport libraries accept a nil logger as "quiet".
func Logger() *log.Logger {
	if level >= LevelTrace {
		return logger
	}
	return nil
}

// Info prints a level 1 message.
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Verbose prints a level 2 message.
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Register prints one register access (level 3).
func Register(op string, axis int, reg string, value int32) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[REG] %s axis=%d %s=0x%08X (%d)", op, axis, reg, uint32(value), value)
	}
}
