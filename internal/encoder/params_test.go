// internal/encoder/params_test.go
package encoder

import (
	"math"
	"testing"
)

func TestCompute_Scenarios(t *testing.T) {
	cases := []struct {
		name      string
		fullSteps uint32
		mres      uint8
		encRes    int32
		want      Params
	}{
		{"1:1 exact", 200, 0, 51200, Params{Decimal: false, Prescaler: 65536}},
		{"1:1 exact inverted", 200, 0, -51200, Params{Decimal: false, Prescaler: -65536}},
		{"51.2 decimal", 200, 0, 1000, Params{Decimal: true, Prescaler: 51<<16 | 2000}},
		{"51.2 decimal inverted", 200, 0, -1000, Params{Decimal: true, Prescaler: -52<<16 | 8000}},
		{"binary fraction", 200, 4, 4096, Params{Decimal: false, Prescaler: 51200}}, // 3200/4096 = 0.78125
		{"binary fraction inverted", 200, 4, -4096, Params{Decimal: false, Prescaler: -51200}},
		{"below one decimal", 200, 4, 4000, Params{Decimal: true, Prescaler: 8000}}, // 0.8
		{"below one decimal inverted", 200, 4, -4000, Params{Decimal: true, Prescaler: -1<<16 | 2000}},
		{"zero motor", 0, 0, 1000, Unity},
		{"zero encoder", 200, 0, 0, Unity},
		{"both zero", 0, 3, 0, Unity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.fullSteps, tc.mres, tc.encRes)
			if got != tc.want {
				t.Fatalf("got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestCompute_NegativeDecimalBitPattern(t *testing.T) {
	p := Compute(200, 0, -1000)

	// (-52 << 16) | 8000
	if uint32(p.Prescaler) != 0xFFCC1F40 {
		t.Fatalf("got=0x%08X want=0xFFCC1F40", uint32(p.Prescaler))
	}
	if p.IntegerPart() != -52 || p.FractionPart() != 8000 {
		t.Fatalf("halves: int=%d frac=%d", p.IntegerPart(), p.FractionPart())
	}
}

func TestCompute_DecimalFieldEdgesNotCarried(t *testing.T) {
	cases := []struct {
		name      string
		fullSteps uint32
		mres      uint8
		encRes    int32
		want      uint32
	}{
		// 0.99999: fraction rounds to 10000, integer half stays 0.
		{"rounds up", 99999, 8, 100000, 0x00002710},
		// -2.000001: (-2-1)<<16 | (10000-0).
		{"inverted rounds down", 2000001, 8, -1000000, 0xFFFD2710},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Compute(tc.fullSteps, tc.mres, tc.encRes)
			if !p.Decimal {
				t.Fatalf("expected decimal mode, got=%s", p)
			}
			if uint32(p.Prescaler) != tc.want {
				t.Fatalf("got=0x%08X want=0x%08X", uint32(p.Prescaler), tc.want)
			}
		})
	}
}

func TestCompute_BinaryModeNeedsExactProduct(t *testing.T) {
	// 2^15 / (2^31-1) scaled by 65536 is 1 + 1/(2^31-1): a miss of
	// about 4.7e-10 must still select decimal mode.
	p := Compute(32768, 8, math.MaxInt32)
	if !p.Decimal || p.Prescaler != 0 {
		t.Fatalf("near-integer product: got=%s", p)
	}

	p = Compute(128, 0, -math.MaxInt32)
	if !p.Decimal || uint32(p.Prescaler) != 0xFFFF2710 {
		t.Fatalf("near-integer product inverted: got=%s", p)
	}

	// Same motor side over 2^30 counts is exactly 2.
	p = Compute(32768, 8, 1<<30)
	if p.Decimal || p.Prescaler != 2 {
		t.Fatalf("exact product: got=%s", p)
	}
}

func TestCompute_FractionFieldBounded(t *testing.T) {
	for enc := int32(-5000); enc <= 5000; enc += 7 {
		if enc == 0 {
			continue
		}
		p := Compute(200, 0, enc)
		if p.Decimal && p.FractionPart() > 10000 {
			t.Fatalf("enc=%d: fraction field %d out of range", enc, p.FractionPart())
		}
	}
}

func TestCompute_SignFollowsEncoder(t *testing.T) {
	for _, enc := range []int32{1, 3, 1000, 4096, 40000, 51200, 100000} {
		pos := Compute(200, 2, enc)
		neg := Compute(200, 2, -enc)

		if pos.Decimal != neg.Decimal {
			t.Fatalf("enc=%d: mode differs by sign", enc)
		}
		if !pos.Decimal && neg.Prescaler != -pos.Prescaler {
			t.Fatalf("enc=%d: binary prescaler not negated: %d vs %d", enc, pos.Prescaler, neg.Prescaler)
		}
		if math.Abs(pos.Ratio()+neg.Ratio()) > 1e-9 {
			t.Fatalf("enc=%d: ratios not symmetric: %f vs %f", enc, pos.Ratio(), neg.Ratio())
		}
	}
}

func TestParams_RatioMatchesInput(t *testing.T) {
	for _, mres := range []uint8{0, 2, 4, 8} {
		for _, enc := range []int32{-40000, -4000, -1000, -300, 300, 1000, 4000, 40000} {
			p := Compute(200, mres, enc)

			want := float64(int64(256>>mres)*200) / float64(enc)
			tol := 1.0 / 65536
			if p.Decimal {
				tol = 0.5 / 10000
			}
			if math.Abs(p.Ratio()-want) > tol+1e-12 {
				t.Fatalf("mres=%d enc=%d: ratio=%f want=%f (%s)", mres, enc, p.Ratio(), want, p)
			}
		}
	}
}

func TestParams_BinaryRatioExact(t *testing.T) {
	if r := Unity.Ratio(); r != 1 {
		t.Fatalf("unity ratio: got=%f", r)
	}
	if r := (Params{Prescaler: -32768}).Ratio(); r != -0.5 {
		t.Fatalf("got=%f want=-0.5", r)
	}
}
