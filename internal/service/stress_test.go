package service

import (
	"testing"
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

func TestStressPlanShortRoundsNeverScheduled(t *testing.T) {
	for _, d := range []time.Duration{0, time.Second, 3 * time.Second} {
		rng := testutil.NewScriptedRand()
		rng.Floats = []float64{0, 0}
		inj := NewStressInjector(rng, DefaultGameSettings().Stress)

		if _, ok := inj.Plan(d); ok {
			t.Fatalf("Plan(%v) scheduled an event", d)
		}
		if len(rng.Floats) != 2 {
			t.Fatalf("Plan(%v) consumed randomness for a short round", d)
		}
	}
}

func TestStressPlanProbability(t *testing.T) {
	rng := testutil.NewScriptedRand()
	rng.Floats = []float64{0.5}
	inj := NewStressInjector(rng, DefaultGameSettings().Stress)

	if _, ok := inj.Plan(25 * time.Second); ok {
		t.Fatal("draw of 0.5 passed a 0.5 probability")
	}

	rng.Floats = []float64{0.49, 0}
	if _, ok := inj.Plan(25 * time.Second); !ok {
		t.Fatal("draw of 0.49 did not pass a 0.5 probability")
	}
}

func TestStressPlanWindow(t *testing.T) {
	d := 25 * time.Second
	window := d - 3*time.Second

	for _, draw := range []float64{0, 0.25, 0.5, 0.999999} {
		rng := testutil.NewScriptedRand()
		rng.Floats = []float64{0, draw}
		inj := NewStressInjector(rng, DefaultGameSettings().Stress)

		offset, ok := inj.Plan(d)
		if !ok {
			t.Fatalf("draw %v: not scheduled", draw)
		}
		if offset < 0 || offset >= window {
			t.Fatalf("draw %v: offset %v outside [0, %v)", draw, offset, window)
		}
		if want := time.Duration(draw * float64(window)); offset != want {
			t.Fatalf("draw %v: offset %v, want %v", draw, offset, want)
		}
	}
}

func TestStressPickUniformOverCatalog(t *testing.T) {
	rng := testutil.NewScriptedRand()
	rng.Ints = []int{0, 1, 2, 3}
	inj := NewStressInjector(rng, DefaultGameSettings().Stress)

	for i, want := range entities.StressCatalog {
		if got := inj.Pick(); got != want {
			t.Fatalf("Pick() #%d = %+v, want %+v", i, got, want)
		}
	}
}
