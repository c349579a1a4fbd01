// cmd/encoderctl/compute.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/tmc-encoder/internal/encoder"
	"github.com/tamzrod/tmc-encoder/internal/tmc"
)

var (
	computeFullSteps uint32
	computeMRES      uint8
	computeEncoder   int32
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a prescaler offline, without touching any device",
	Example: `  encoderctl compute --fullsteps 200 --mres 0 --encoder 1000
  encoderctl compute --fullsteps 200 --mres 4 --encoder -4096`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().Uint32Var(&computeFullSteps, "fullsteps", 200, "Motor full steps per unit (0 = 1:1)")
	computeCmd.Flags().Uint8Var(&computeMRES, "mres", 0, "CHOPCONF.mres (microsteps = 256 >> mres)")
	computeCmd.Flags().Int32Var(&computeEncoder, "encoder", 0, "Encoder counts per unit, negative if inverted (0 = 1:1)")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	if computeMRES > tmc.MaxMRES {
		return errors.New("--mres must be between 0 and 8")
	}

	p := encoder.Compute(computeFullSteps, computeMRES, computeEncoder)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "microsteps/fullstep: %d\n", tmc.MicrostepsFromMRES(computeMRES))
	fmt.Fprintf(out, "enc_sel_decimal:     %t\n", p.Decimal)
	fmt.Fprintf(out, "ENC_CONST:           %d (0x%08X)\n", p.Prescaler, uint32(p.Prescaler))
	fmt.Fprintf(out, "encoding:            %s\n", p)
	return nil
}
