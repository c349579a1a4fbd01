// cmd/encoderctl/position.go
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Read or overwrite the encoder position counter (X_ENC)",
}

var positionGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print X_ENC of the selected axes",
	Args:  cobra.NoArgs,
	RunE:  runPositionGet,
}

var positionSetCmd = &cobra.Command{
	Use:   "set VALUE",
	Short: "Overwrite X_ENC of one axis (requires --axis)",
	Long: `Overwrite the encoder position counter, e.g. to re-home it or to
correct drift. VALUE is a signed 32-bit integer (decimal or 0x hex).`,
	Args: cobra.ExactArgs(1),
	RunE: runPositionSet,
}

func init() {
	positionCmd.AddCommand(positionGetCmd)
	positionCmd.AddCommand(positionSetCmd)
	rootCmd.AddCommand(positionCmd)
}

func runPositionGet(cmd *cobra.Command, args []string) error {
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
		pos, err := ctl.scaler.GetEncoderPosition(a)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %d\n", ctl.name(a), pos)
	}
	return nil
}

func runPositionSet(cmd *cobra.Command, args []string) error {
	if axisFlag < 0 {
		return errors.New("position set requires --axis")
	}

	value, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	ctl, err := openController()
	if err != nil {
		return err
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		return err
	}

	if err := ctl.scaler.SetEncoderPosition(axes[0], value); err != nil {
		return err
	}
	fmt.Printf("%-8s %d\n", ctl.name(axes[0]), value)
	return nil
}

func parsePosition(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return int32(v), nil
}
