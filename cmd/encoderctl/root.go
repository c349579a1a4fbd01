// cmd/encoderctl/root.go
package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	debugLevel int
	axisFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "encoderctl",
	Short: "TMC5160 encoder scaling tool",
	Long: `encoderctl - configure and read the encoder interface of TMC5160 drivers
reached through a Modbus register gateway.

The encoder prescaler (ENC_CONST) and its decimal mode flag (ENCMODE) are
derived from the motor full step resolution, the live microstep setting and
the encoder resolution of each axis in the configuration file.

Endpoints:
  tcp:    Modbus TCP gateway, address host:port
  rtu:    Modbus RTU over a serial line, address /dev/ttyUSB0
  memory: in-process register file for dry runs`,
	Version:      "0.3.0",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "encoder.yaml", "Path to config file")
	rootCmd.PersistentFlags().IntVarP(&debugLevel, "debug", "d", -1, "Debug level 0-3 (overrides debug_level in config)")
	rootCmd.PersistentFlags().IntVarP(&axisFlag, "axis", "a", -1, "Restrict to one axis (default: all configured axes)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
