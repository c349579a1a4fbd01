// cmd/encoderctl/calibrate.go
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Compute and write encoder prescaler and mode flag",
	Long: `Derive the encoder prescaler from motor_fullstep_resolution, the current
microstep resolution (CHOPCONF.mres, or microstep_exponent from the config)
and encoder_resolution, then write ENCMODE.enc_sel_decimal and ENC_CONST.

Ratios that are exact in 16-bit binary fixed point use binary mode; all other
ratios use decimal mode (integer part in the upper 16 bits, fraction x10000
in the lower 16 bits). A zero resolution selects 1:1 scaling.

Run again whenever the microstep resolution changes.`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	ctl, err := openController()
	if err != nil {
		return err
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		return err
	}

	var errs error
	for _, a := range axes {
		p, err := ctl.scaler.CalculateEncoderParameters(a)
		if err != nil {
			log.Printf("calibrate failed (axis=%s): %v", ctl.name(a), err)
			errs = multierr.Append(errs, err)
			continue
		}
		fmt.Printf("%-8s %s\n", ctl.name(a), p)
	}
	return errs
}
