package hsf_test

import (
	"testing"

	"github.com/djdv/go-hsf"
)

// TestLearnedFrequencyForest exercises scenario S4: every key's rank
// equals the key itself, inserted then found by that same rank, with zero
// mispredictions expected.
func TestLearnedFrequencyForest(t *testing.T) {
	min := hsf.Capacity{Base: 1.1, FillFactor: 1.0, TopSize: 256}
	max := hsf.Capacity{Base: 1.1, FillFactor: 1.1, TopSize: 256}
	forest, err := hsf.NewLearnedFrequencyForest[int](min, max)
	if err != nil {
		t.Fatal(err)
	}

	const n = 1000
	for k := 0; k < n; k++ {
		forest.Insert(k, uint32(k))
	}
	for k := 0; k < n; k++ {
		it := forest.Find(k, uint32(k))
		if it.End() {
			t.Fatalf("find(%d, rank=%d) missed", k, k)
		}
		if it.Key() != k {
			t.Fatalf("find(%d, rank=%d) returned key %v", k, k, it.Key())
		}
	}
	if got := forest.Mispredictions(); got != 0 {
		t.Fatalf("expected zero mispredictions with rank == key, got %d", got)
	}
}

func TestLearnedFrequencyForestDuplicateInsert(t *testing.T) {
	t.Parallel()
	forest, err := hsf.NewLearnedFrequencyForest[int](hsf.NewCapacity(1.0), hsf.NewCapacity(1.1))
	if err != nil {
		t.Fatal(err)
	}
	first := forest.Insert(1, 10)
	again := forest.Insert(1, 99999)
	if again.Level() != first.Level() {
		t.Fatal("duplicate insert must not move an existing key")
	}
}

func TestLearnedFrequencyForestTailCompaction(t *testing.T) {
	t.Parallel()
	min := hsf.Capacity{Base: 1.1, FillFactor: 1.0, TopSize: 8}
	max := hsf.Capacity{Base: 1.1, FillFactor: 1.1, TopSize: 8}
	forest, err := hsf.NewLearnedFrequencyForest[int](min, max)
	if err != nil {
		t.Fatal(err)
	}

	// Force a tail beyond level 0 to exist, so overflow at level 0 is no
	// longer overflow at the tail.
	forest.Insert(-1, uint32(min.At(0))+1)
	if forest.Levels() < 2 {
		t.Fatalf("expected the high-rank insert to grow a second level, got %d levels", forest.Levels())
	}

	// Every one of these predicts level 0, which is no longer the tail:
	// tail-only compaction should tolerate this overflow rather than
	// cascade it downward.
	for k := 0; k < 64; k++ {
		forest.Insert(k, 0)
	}
	if got, want := forest.SizeAt(0), 64; got != want {
		t.Fatalf("expected tail-only compaction to leave all 64 keys at level 0, got %d", got)
	}
}
