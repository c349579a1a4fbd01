// cmd/encoderctl/state.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read back ENCMODE decimal flag and ENC_CONST",
	Args:  cobra.NoArgs,
	RunE:  runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	ctl, err := openController()
	if err != nil {
		return err
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		return err
	}

	for _, a := range axes {
		p, err := ctl.scaler.ReadState(a)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %s\n", ctl.name(a), p)
	}
	return nil
}
