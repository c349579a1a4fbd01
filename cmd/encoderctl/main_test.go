// cmd/encoderctl/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/tmc-encoder/internal/config"
	"github.com/tamzrod/tmc-encoder/internal/poller"
	"github.com/tamzrod/tmc-encoder/internal/regaccess"
)

const memoryYAML = `
controller:
  endpoints:
    - id: sim
      transport: memory
  axes:
    - axis: 0
      name: pan
      endpoint: sim
      motor_fullstep_resolution: 200
      encoder_resolution: -1000
      microstep_exponent: 0
    - axis: 3
      endpoint: sim
      base_address: 256
      motor_fullstep_resolution: 200
      encoder_resolution: 51200
`

func withConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encoder.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	prevPath, prevDebug, prevAxis := cfgPath, debugLevel, axisFlag
	cfgPath, debugLevel, axisFlag = path, 0, -1
	t.Cleanup(func() {
		cfgPath, debugLevel, axisFlag = prevPath, prevDebug, prevAxis
	})
}

func TestEncoderViews(t *testing.T) {
	mres := uint8(4)
	view, fixed := encoderViews(config.ControllerConfig{
		Axes: []config.AxisConfig{
			{Axis: 0, MotorFullStepResolution: 200, EncoderResolution: -1000, MicrostepExponent: &mres},
			{Axis: 1, MotorFullStepResolution: 400, EncoderResolution: 4096},
		},
	})

	if view[0].EncoderResolution != -1000 || view[1].MotorFullStepResolution != 400 {
		t.Fatalf("view: %+v", view)
	}
	if fixed[0] != 4 {
		t.Fatalf("fixed mres for axis 0: got=%d want=4", fixed[0])
	}
	if _, ok := fixed[1]; ok {
		t.Fatalf("axis 1 has no fixed mres")
	}
}

func TestController_MemoryEndToEnd(t *testing.T) {
	withConfig(t, memoryYAML)

	ctl, err := openController()
	if err != nil {
		t.Fatalf("openController: %v", err)
	}
	defer ctl.close()

	axes, err := ctl.axes()
	if err != nil {
		t.Fatalf("axes: %v", err)
	}
	if len(axes) != 2 || axes[0] != 0 || axes[1] != 3 {
		t.Fatalf("axes: %v", axes)
	}

	if err := ctl.scaler.InitializeAll(axes); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}

	// Axis 0 has a fixed mres; axis 3 reads CHOPCONF, which is zero in memory.
	p0, err := ctl.scaler.CalculateEncoderParameters(0)
	if err != nil {
		t.Fatalf("calibrate axis 0: %v", err)
	}
	if !p0.Decimal || p0.Prescaler != -52<<16|8000 {
		t.Fatalf("axis 0: %s", p0)
	}

	p3, err := ctl.scaler.CalculateEncoderParameters(3)
	if err != nil {
		t.Fatalf("calibrate axis 3: %v", err)
	}
	if p3.Decimal || p3.Prescaler != 65536 {
		t.Fatalf("axis 3: %s", p3)
	}

	state, err := ctl.scaler.ReadState(0)
	if err != nil || state != p0 {
		t.Fatalf("read back axis 0: %s err=%v", state, err)
	}

	if err := ctl.scaler.SetEncoderPosition(3, -42); err != nil {
		t.Fatalf("SetEncoderPosition: %v", err)
	}
	if pos, _ := ctl.scaler.GetEncoderPosition(3); pos != -42 {
		t.Fatalf("position: got=%d want=-42", pos)
	}
	if pos, _ := ctl.scaler.GetEncoderPosition(0); pos != 0 {
		t.Fatalf("axis 0 position disturbed: %d", pos)
	}
}

func TestController_AxisFlag(t *testing.T) {
	withConfig(t, memoryYAML)

	ctl, err := openController()
	if err != nil {
		t.Fatalf("openController: %v", err)
	}
	defer ctl.close()

	axisFlag = 3
	axes, err := ctl.axes()
	if err != nil || len(axes) != 1 || axes[0] != 3 {
		t.Fatalf("axes: %v err=%v", axes, err)
	}
	if ctl.name(3) != "axis3" {
		t.Fatalf("default name: got=%q", ctl.name(3))
	}

	axisFlag = 7
	if _, err := ctl.axes(); err == nil {
		t.Fatalf("expected error for unconfigured axis")
	}
}

func TestParsePosition(t *testing.T) {
	cases := map[string]int32{
		"0":           0,
		"-1":          -1,
		"2147483647":  2147483647,
		"-2147483648": -2147483648,
		"0x10":        16,
	}
	for in, want := range cases {
		got, err := parsePosition(in)
		if err != nil || got != want {
			t.Fatalf("%q: got=%d err=%v want=%d", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "abc", "2147483648", "1.5"} {
		if _, err := parsePosition(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestRunCompute(t *testing.T) {
	defer func() {
		computeCmd.SetOut(nil)
		computeFullSteps, computeMRES, computeEncoder = 200, 0, 0
	}()

	cases := []struct {
		fullSteps uint32
		mres      uint8
		encoder   int32
		want      []string
	}{
		{200, 0, 1000, []string{"microsteps/fullstep: 256", "enc_sel_decimal:     true", "(0x003307D0)"}},
		{200, 4, -4096, []string{"microsteps/fullstep: 16", "enc_sel_decimal:     false", "-51200 (0xFFFF3800)"}},
		{200, 8, 0, []string{"microsteps/fullstep: 1", "65536 (0x00010000)"}},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		computeCmd.SetOut(&buf)
		computeFullSteps, computeMRES, computeEncoder = tc.fullSteps, tc.mres, tc.encoder

		if err := runCompute(computeCmd, nil); err != nil {
			t.Fatalf("%d/%d/%d: %v", tc.fullSteps, tc.mres, tc.encoder, err)
		}
		for _, w := range tc.want {
			if !strings.Contains(buf.String(), w) {
				t.Fatalf("%d/%d/%d: missing %q in:\n%s", tc.fullSteps, tc.mres, tc.encoder, w, buf.String())
			}
		}
	}

	for _, mres := range []uint8{9, 15} {
		var buf bytes.Buffer
		computeCmd.SetOut(&buf)
		computeMRES = mres
		if err := runCompute(computeCmd, nil); err == nil {
			t.Fatalf("mres=%d: expected error", mres)
		}
		if buf.Len() != 0 {
			t.Fatalf("mres=%d: unexpected output %q", mres, buf.String())
		}
	}
}

func TestFormatPositions(t *testing.T) {
	withConfig(t, memoryYAML)

	ctl, err := openController()
	if err != nil {
		t.Fatalf("openController: %v", err)
	}
	defer ctl.close()

	line := formatPositions(ctl, poller.PollResult{
		At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Positions: []poller.AxisPosition{
			{Axis: regaccess.Axis(0), Position: 10},
			{Axis: regaccess.Axis(3), Position: -5},
		},
	})

	if !strings.HasPrefix(line, "03:04:05.000") {
		t.Fatalf("timestamp missing: %q", line)
	}
	if !strings.Contains(line, "pan=10") || !strings.Contains(line, "axis3=-5") {
		t.Fatalf("positions missing: %q", line)
	}
}
