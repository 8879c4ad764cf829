package hsf

import (
	"cmp"
	"container/heap"
)

type (
	// LearnedFrequencyForest is the rank-hinted frequency variant: the
	// caller supplies a per-key rank (smaller = hotter) instead of letting
	// the forest count accesses itself. Find neither mutates nor promotes;
	// it only reports whether the rank-predicted level was correct.
	LearnedFrequencyForest[Key cmp.Ordered] struct {
		core *forest[Key, uint32]
	}

	// LearnedFrequencyIterator addresses an element of a
	// [LearnedFrequencyForest].
	LearnedFrequencyIterator[Key cmp.Ordered] = Iterator[Key, uint32]
)

// NewLearnedFrequencyForest builds an empty rank-hinted frequency forest.
// maxCapacity's FillFactor must exceed minCapacity's, or
// [ErrInvalidFillFactor] is returned.
func NewLearnedFrequencyForest[Key cmp.Ordered](minCapacity, maxCapacity Capacity) (*LearnedFrequencyForest[Key], error) {
	core, err := newForest[Key, uint32](minCapacity, maxCapacity)
	if err != nil {
		return nil, err
	}
	return &LearnedFrequencyForest[Key]{core: core}, nil
}

func (f *LearnedFrequencyForest[Key]) Size() int                         { return f.core.Size() }
func (f *LearnedFrequencyForest[Key]) SizeAt(level int) int              { return f.core.SizeAt(level) }
func (f *LearnedFrequencyForest[Key]) Capacity(level int) (min, max int) { return f.core.Capacity(level) }
func (f *LearnedFrequencyForest[Key]) Levels() int                       { return f.core.Levels() }
func (f *LearnedFrequencyForest[Key]) Begin() LearnedFrequencyIterator[Key] { return f.core.begin() }
func (f *LearnedFrequencyForest[Key]) End() LearnedFrequencyIterator[Key]   { return f.core.end() }

func (f *LearnedFrequencyForest[Key]) Compactions() int    { return f.core.Compactions }
func (f *LearnedFrequencyForest[Key]) Promotions() int     { return f.core.Promotions }
func (f *LearnedFrequencyForest[Key]) Mispredictions() int { return f.core.Mispredictions }

// Insert places key at the level prediction_to_level(rank, minCapacity)
// predicts, given minCapacity's cumulative band widths.
func (f *LearnedFrequencyForest[Key]) Insert(key Key, rank uint32) LearnedFrequencyIterator[Key] {
	if it, ok := f.core.contains(key); ok {
		return it
	}
	level := PredictionToLevel(uint64(rank), f.core.minCapacity)
	if level < 0 {
		level = f.core.Levels() - 1
	}
	it := f.core.insert(key, rank, level)
	f.compactLevel(level)
	return it
}

// Find probes starting at the level rank predicts. It never mutates
// placement; a distinct hit level only moves the misprediction counter.
func (f *LearnedFrequencyForest[Key]) Find(key Key, rank uint32) LearnedFrequencyIterator[Key] {
	level := PredictionToLevel(uint64(rank), f.core.minCapacity)
	if level < 0 {
		level = f.core.Levels() - 1
	}
	return f.core.find(key, level)
}

// Erase removes the element it addresses.
func (f *LearnedFrequencyForest[Key]) Erase(it LearnedFrequencyIterator[Key]) {
	f.core.erase(it)
}

type rankHeapItem[Key cmp.Ordered] struct {
	key  Key
	rank uint32
}

// rankMaxHeap is a bounded min-heap over rank, used to pick the
// highest-ranked (per the prediction, coldest) keys in a single pass
// during tail compaction: its root is the lowest rank kept, which a
// higher-ranked candidate replaces.
type rankMaxHeap[Key cmp.Ordered] []rankHeapItem[Key]

func (h rankMaxHeap[Key]) Len() int            { return len(h) }
func (h rankMaxHeap[Key]) Less(i, j int) bool  { return h[i].rank < h[j].rank } // min-heap: root is the lowest rank kept
func (h rankMaxHeap[Key]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rankMaxHeap[Key]) Push(x any)         { *h = append(*h, x.(rankHeapItem[Key])) }
func (h *rankMaxHeap[Key]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// compactLevel only ever compacts the tail: because rank predicts the
// ideal level directly, overflow at a non-tail level indicates a
// prediction mismatch rather than organic growth, and is tolerated rather
// than cascaded (the resolution of spec.md's open question on this point;
// see DESIGN.md).
func (f *LearnedFrequencyForest[Key]) compactLevel(level int) {
	if level != f.core.Levels()-1 {
		return
	}
	min, max := f.core.Capacity(level)
	size := f.core.SizeAt(level)
	if size <= max {
		return
	}
	toMove := size - min

	h := make(rankMaxHeap[Key], 0, toMove)
	heap.Init(&h)
	for node := f.core.levelDicts[level].Min(); node != nil; node = node.Next() {
		item := rankHeapItem[Key]{key: node.Key, rank: node.Value}
		if h.Len() < toMove {
			heap.Push(&h, item)
		} else if item.rank > h[0].rank {
			heap.Pop(&h)
			heap.Push(&h, item)
		}
	}

	f.core.growTo(level + 1)
	for _, item := range h {
		it := f.core.find(item.key, level)
		if it.End() {
			continue
		}
		f.core.erase(it)
		f.core.insert(item.key, item.rank, level+1)
	}
	f.compactLevel(level + 1)
}
