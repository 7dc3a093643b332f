package pet

import (
	"errors"
	"testing"
)

func TestAdvanceStatFloorsAtZero(t *testing.T) {
	cases := []struct {
		ticks, elapsed, want int64
	}{
		{100, 40, 60},
		{100, 100, 0},
		{100, 1_000_000, 0},
		{0, 5, 0},
		{3, 0, 3},
	}
	for _, c := range cases {
		if got := AdvanceStat(c.ticks, c.elapsed); got != c.want {
			t.Fatalf("AdvanceStat(%d,%d) = %d, want %d", c.ticks, c.elapsed, got, c.want)
		}
	}
}

func TestDisplayValueBounds(t *testing.T) {
	cases := []struct {
		ticks, mult int64
		want        int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{1600, 16, 100},
		{999_999, 16, 100},
		{500, 10, 50},
		{7, 24, 0},
	}
	for _, c := range cases {
		got := DisplayValue(c.ticks, c.mult)
		if got != c.want {
			t.Fatalf("DisplayValue(%d,%d) = %d, want %d", c.ticks, c.mult, got, c.want)
		}
		if got < 0 || got > DisplayMax {
			t.Fatalf("DisplayValue(%d,%d) = %d outside [0,100]", c.ticks, c.mult, got)
		}
	}
}

func TestApplyCareGainRejectsFullStatBeforeMutating(t *testing.T) {
	full := int64(1600) // display 100 at multiplier 16
	got, err := ApplyCareGain(full, 480, 1600, 16)
	if !errors.Is(err, ErrStatAlreadyFull) {
		t.Fatalf("expected ErrStatAlreadyFull, got %v", err)
	}
	if got != full {
		t.Fatalf("ticks changed on rejection: %d", got)
	}
}

func TestApplyCareGainClampsAtCap(t *testing.T) {
	got, err := ApplyCareGain(1500, 480, 1600, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1600 {
		t.Fatalf("expected clamp to 1600, got %d", got)
	}
}

func TestLifeDrainPerTick(t *testing.T) {
	tun := DefaultTuning()
	if got := tun.LifeDrainPerTick(0, false); got != tun.BaseLifeDrain {
		t.Fatalf("base drain = %d, want %d", got, tun.BaseLifeDrain)
	}
	if got := tun.LifeDrainPerTick(2, false); got != tun.BaseLifeDrain+2*tun.EmptyStatLifeDrain {
		t.Fatalf("drain with two empty stats = %d", got)
	}
	if got := tun.LifeDrainPerTick(1, true); got != tun.BaseLifeDrain+tun.EmptyStatLifeDrain+tun.SickLifeDrain {
		t.Fatalf("sick drain = %d", got)
	}
}

func TestMultipliersAreAsymmetric(t *testing.T) {
	tun := DefaultTuning()
	if tun.SatietyMultiplier == tun.HydrationMultiplier || tun.HydrationMultiplier == tun.HappinessMultiplier {
		t.Fatalf("depletable stats must not share multipliers: %d %d %d",
			tun.SatietyMultiplier, tun.HydrationMultiplier, tun.HappinessMultiplier)
	}
}
