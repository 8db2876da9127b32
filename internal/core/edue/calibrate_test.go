package edue

import "testing"

func TestCalibratePageBonusIsMonotonic(t *testing.T) {
	one := Calibrate(0.5, []int{1}, false)
	three := Calibrate(0.5, []int{1, 2, 3}, false)
	five := Calibrate(0.5, []int{1, 2, 3, 4, 5}, false)

	if !(one.CalibratedScore < three.CalibratedScore) {
		t.Fatalf("expected 1-page score %v < 3-page score %v", one.CalibratedScore, three.CalibratedScore)
	}
	if !(three.CalibratedScore < five.CalibratedScore) {
		t.Fatalf("expected 3-page score %v < 5-page score %v", three.CalibratedScore, five.CalibratedScore)
	}
}

func TestCalibrateSinglePagePenalty(t *testing.T) {
	got := Calibrate(0.5, []int{4}, false)
	if got.CalibratedScore != 0.45 {
		t.Fatalf("expected 0.45, got %v", got.CalibratedScore)
	}
	if got.PageSupport != 1 {
		t.Fatalf("expected page_support 1, got %d", got.PageSupport)
	}
}

func TestCalibrateCountsDistinctPages(t *testing.T) {
	got := Calibrate(0.5, []int{2, 2, 2}, false)
	if got.PageSupport != 1 {
		t.Fatalf("expected distinct page_support 1, got %d", got.PageSupport)
	}
}

func TestCalibrateClampsIntoUnitRange(t *testing.T) {
	high := Calibrate(0.99, []int{1, 2, 3, 4, 5}, true)
	if high.CalibratedScore > 1.0 {
		t.Fatalf("score above 1: %v", high.CalibratedScore)
	}
	low := Calibrate(0.0, []int{1}, false)
	if low.CalibratedScore < 0.0 {
		t.Fatalf("score below 0: %v", low.CalibratedScore)
	}
}

func TestCalibrateCorroborationOnlyForStrongAnswers(t *testing.T) {
	weak := Calibrate(0.5, []int{1, 2}, true)
	if weak.CalibratedScore != 0.5 {
		t.Fatalf("weak answer must not get corroboration bonus, got %v", weak.CalibratedScore)
	}

	strong := Calibrate(0.8, []int{1, 2}, true)
	if strong.CalibratedScore != 0.82 {
		t.Fatalf("expected corroboration bonus, got %v", strong.CalibratedScore)
	}

	notConsulted := Calibrate(0.8, []int{1, 2}, false)
	if notConsulted.CalibratedScore != 0.8 {
		t.Fatalf("bonus without secondary engine, got %v", notConsulted.CalibratedScore)
	}
}

func TestCalibrateBands(t *testing.T) {
	cases := []struct {
		raw  float64
		band string
	}{
		{0.95, "very_high"},
		{0.80, "high"},
		{0.60, "medium"},
		{0.30, "low"},
		{0.05, "very_low"},
	}
	for _, tc := range cases {
		got := Calibrate(tc.raw, []int{1, 2}, false)
		if got.Band != tc.band {
			t.Fatalf("Calibrate(%v) band = %q, want %q", tc.raw, got.Band, tc.band)
		}
		if got.Explanation == "" {
			t.Fatalf("band %q has empty explanation", got.Band)
		}
	}
}

func TestCalibrateDoesNotChangeRawScore(t *testing.T) {
	got := Calibrate(0.62, []int{1, 2, 3}, false)
	if got.RawScore != 0.62 {
		t.Fatalf("raw score mutated: %v", got.RawScore)
	}
	if got.CalibratedScore != 0.65 {
		t.Fatalf("expected calibrated 0.65, got %v", got.CalibratedScore)
	}
}
