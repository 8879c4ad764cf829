package hsf_test

import (
	"math/rand/v2"
	"testing"

	"github.com/djdv/go-hsf"
)

// TestPredictionToLevel is scenario S5.
func TestPredictionToLevel(t *testing.T) {
	c := hsf.Capacity{Base: 1.1, FillFactor: 1.0, TopSize: 256}

	if got := hsf.PredictionToLevel(0, c); got != 0 {
		t.Fatalf("prediction_to_level(0) = %d, want 0", got)
	}
	top := uint64(c.At(0))
	if got := hsf.PredictionToLevel(top-1, c); got != 0 {
		t.Fatalf("prediction_to_level(%d) = %d, want 0", top-1, got)
	}
	if got := hsf.PredictionToLevel(top, c); got <= 0 {
		t.Fatalf("prediction_to_level(%d) = %d, want > 0", top, got)
	}
	if got := hsf.PredictionToLevel(hsf.NoPrediction, c); got != -1 {
		t.Fatalf("prediction_to_level(NoPrediction) = %d, want -1", got)
	}

	rng := rand.New(rand.NewPCG(1, 1))
	prev := uint64(0)
	prevLevel := hsf.PredictionToLevel(prev, c)
	for i := 0; i < 1000; i++ {
		next := prev + rng.Uint64N(1<<20)
		nextLevel := hsf.PredictionToLevel(next, c)
		if nextLevel < prevLevel {
			t.Fatalf("prediction_to_level not monotonic: f(%d)=%d > f(%d)=%d", prev, prevLevel, next, nextLevel)
		}
		prev, prevLevel = next, nextLevel
	}
}

// TestPredictionSketchCollision is scenario S6: two keys forced to
// collide in every row settle on the min-aggregated value.
func TestPredictionSketchCollision(t *testing.T) {
	hash := func(key int) uint64 { return 0 } // Every key maps to the same digest, forcing collision in every row.
	sketch := hsf.NewPredictionSketch[int](4, 1024, hash)

	const k1, k2 = 1, 2
	sketch.Insert(k1, 3)
	sketch.Insert(k2, 5)

	if got := sketch.Get(k1); got != 3 {
		t.Fatalf("get(k1) = %d, want 3", got)
	}
	if got := sketch.Get(k2); got != 3 {
		t.Fatalf("get(k2) = %d, want 3 (collision forces min-aggregate)", got)
	}
}

func TestPredictionSketchUpdate(t *testing.T) {
	t.Parallel()
	hash := func(key int) uint64 { return uint64(key) }
	sketch := hsf.NewPredictionSketch[int](4, 1024, hash)

	sketch.Insert(1, 10)
	sketch.Update(1, 2)
	if got := sketch.Get(1); got != 2 {
		t.Fatalf("get(1) after update = %d, want 2 (no collision yet, overwrite allowed)", got)
	}
}
