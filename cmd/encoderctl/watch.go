// cmd/encoderctl/watch.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/tmc-encoder/internal/poller"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll X_ENC of the selected axes until interrupted",
	Long: `Poll the encoder position of the selected axes every poll.interval_ms
and print one line per cycle. A failed cycle is logged and polling continues.

Press Ctrl+C to exit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctl, err := openController()
	if err != nil {
		return err
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		return err
	}

	p, err := poller.New(poller.Config{
		Name:     "watch",
		Interval: time.Duration(ctl.cfg.Controller.Poll.IntervalMs) * time.Millisecond,
		Axes:     axes,
	}, ctl.scaler)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := make(chan poller.PollResult)
	go p.Run(ctx, out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-out:
			if res.Err != nil {
				log.Printf("poll failed: %v", res.Err)
				continue
			}
			fmt.Println(formatPositions(ctl, res))
		}
	}
}

func formatPositions(ctl *controller, res poller.PollResult) string {
	var b strings.Builder
	b.WriteString(res.At.Format("15:04:05.000"))
	for _, ap := range res.Positions {
		fmt.Fprintf(&b, "  %s=%d", ctl.name(ap.Axis), ap.Position)
	}
	return b.String()
}
