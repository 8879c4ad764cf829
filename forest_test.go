package hsf_test

import (
	"testing"

	"github.com/djdv/go-hsf"
)

func TestCapacity(t *testing.T) {
	t.Run("invalid fill factor", invalidFillFactor)
	t.Run("dense insert", denseInsert)
	t.Run("monotonic growth", monotonicGrowth)
}

func invalidFillFactor(t *testing.T) {
	t.Parallel()
	min := hsf.NewCapacity(1.0)
	max := hsf.NewCapacity(1.0) // equal, not greater: must be rejected.
	if _, err := hsf.NewFrequencyForest[int](min, max); err == nil {
		t.Fatal("expected an error constructing a forest with a non-increasing fill factor")
	}
}

func monotonicGrowth(t *testing.T) {
	t.Parallel()
	c := hsf.NewCapacity(1.0)
	prev := -1
	for level := 0; level < 6; level++ {
		got := c.At(level)
		if got <= prev {
			t.Fatalf("capacity.At(%d) = %d did not exceed previous level %d", level, got, prev)
		}
		prev = got
	}
}

// denseInsert is scenario S1: insert a dense range of keys and confirm
// every one of them is findable afterward.
func denseInsert(t *testing.T) {
	t.Parallel()
	min := hsf.NewCapacity(1.0)
	max := hsf.NewCapacity(2.0)
	forest := mustNewFrequencyForest(t, min, max)

	const n = 10000
	for k := 0; k < n; k++ {
		forest.Insert(k, 0)
	}
	checkForestSize(t, forest, n, "after dense insert")

	if got := forest.Levels(); got < 2 {
		t.Fatalf("expected at least 2 levels after dense insert, got %d", got)
	}
	for k := 0; k < n; k++ {
		if it := forest.Find(k, 0); it.End() {
			t.Fatalf("key %d not found after dense insert", k)
		}
	}
}

func mustNewFrequencyForest(tb testing.TB, min, max hsf.Capacity) *hsf.FrequencyForest[int] {
	tb.Helper()
	forest, err := hsf.NewFrequencyForest[int](min, max)
	if err != nil {
		tb.Fatal(err)
	}
	return forest
}

func checkForestSize(tb testing.TB, forest *hsf.FrequencyForest[int], want int, action string) {
	tb.Helper()
	if got := forest.Size(); got != want {
		tb.Fatalf(
			"expected forest to be a specific size %s"+
				"\n\tgot: %d"+
				"\n\twant: %d",
			action, got, want)
	}
}
