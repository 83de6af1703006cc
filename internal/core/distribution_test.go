package core

import (
	"math"
	"testing"
)

func entries(cents ...int64) ([]CategoryAmount, Money) {
	var out []CategoryAmount
	var total Money
	for i, c := range cents {
		out = append(out, CategoryAmount{Name: string(rune('A' + i)), Amount: Money{Cents: c}})
		total.Cents += c
	}
	return out, total
}

func TestRenderDistributionPercentagesSumTo100(t *testing.T) {
	cases := [][]int64{
		{100},
		{4000, 2000},
		{1, 2, 3, 4, 5},
		{333, 333, 334},
	}
	for _, cents := range cases {
		es, total := entries(cents...)
		slices := RenderDistribution(es, total)
		sum := 0.0
		for _, s := range slices {
			sum += s.Percentage
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("%v: percentages sum to %f, want 100", cents, sum)
		}
	}
}

func TestRenderDistributionZeroTotal(t *testing.T) {
	es, _ := entries(0, 0)
	slices := RenderDistribution(es, Money{Cents: 0})
	for i, s := range slices {
		if s.Percentage != 0 {
			t.Fatalf("slice %d percentage = %f, want exactly 0", i, s.Percentage)
		}
		if s.StartAngle != -90 || s.EndAngle != -90 {
			t.Fatalf("slice %d has non-empty span: [%f, %f]", i, s.StartAngle, s.EndAngle)
		}
		if s.LargeArc {
			t.Fatalf("slice %d flagged large-arc on zero total", i)
		}
	}
}

func TestRenderDistributionAnglesAreCumulative(t *testing.T) {
	es, total := entries(5000, 2500, 2500)
	slices := RenderDistribution(es, total)

	if slices[0].StartAngle != -90 {
		t.Fatalf("first start angle = %f, want -90", slices[0].StartAngle)
	}
	for i := 1; i < len(slices); i++ {
		if math.Abs(slices[i].StartAngle-slices[i-1].EndAngle) > 1e-9 {
			t.Fatalf("slice %d start %f != previous end %f", i, slices[i].StartAngle, slices[i-1].EndAngle)
		}
	}
	last := slices[len(slices)-1]
	if math.Abs(last.EndAngle-270) > 1e-9 {
		t.Fatalf("last end angle = %f, want 270", last.EndAngle)
	}
}

func TestRenderDistributionLargeArcFlag(t *testing.T) {
	es, total := entries(7500, 2500)
	slices := RenderDistribution(es, total)
	if !slices[0].LargeArc {
		t.Fatalf("75%% slice should need a large arc")
	}
	if slices[1].LargeArc {
		t.Fatalf("25%% slice should not need a large arc")
	}

	// Exactly half does not exceed 50%.
	es, total = entries(500, 500)
	slices = RenderDistribution(es, total)
	if slices[0].LargeArc || slices[1].LargeArc {
		t.Fatalf("50%% slices must not be large-arc")
	}
}

func TestRenderDistributionIntensity(t *testing.T) {
	// Single entry gets the full weight.
	es, total := entries(100)
	slices := RenderDistribution(es, total)
	if slices[0].Intensity != 0.9 {
		t.Fatalf("single-entry intensity = %f, want 0.9", slices[0].Intensity)
	}

	es, total = entries(10, 20, 30, 40, 50)
	slices = RenderDistribution(es, total)
	if slices[0].Intensity != 0.9 {
		t.Fatalf("first intensity = %f, want 0.9", slices[0].Intensity)
	}
	for i := 1; i < len(slices); i++ {
		if slices[i].Intensity > slices[i-1].Intensity {
			t.Fatalf("intensity increased at rank %d: %f > %f", i, slices[i].Intensity, slices[i-1].Intensity)
		}
	}
	last := slices[len(slices)-1].Intensity
	if math.Abs(last-0.1) > 1e-9 {
		t.Fatalf("last intensity = %f, want 0.1", last)
	}
}

func TestRenderDistributionEmpty(t *testing.T) {
	if got := RenderDistribution(nil, Money{}); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}
