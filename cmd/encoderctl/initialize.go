// cmd/encoderctl/initialize.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/tmc-encoder/internal/encoder"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the 1:1 default prescaler to every axis",
	Long: `Write ENC_CONST = 65536 (1.0 in binary mode) to each selected axis.

Run once at startup, before calibrate, so no driver is left with an
undefined prescaler. ENCMODE is not touched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctl, err := openController()
	if err != nil {
		return err
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		return err
	}

	if err := ctl.scaler.InitializeAll(axes); err != nil {
		return err
	}

	for _, a := range axes {
		fmt.Printf("%-8s ENC_CONST=%d\n", ctl.name(a), encoder.UnityPrescaler)
	}
	return nil
}
