package hsf

import (
	"cmp"
	"container/heap"
)

type (
	// LearnedRecencyForest is the next-access-hinted recency variant: the
	// caller supplies an estimated distance to the key's next access
	// (smaller = sooner = hotter) instead of letting the forest track
	// recency itself.
	LearnedRecencyForest[Key cmp.Ordered] struct {
		core *forest[Key, uint32]
	}

	// LearnedRecencyIterator addresses an element of a
	// [LearnedRecencyForest].
	LearnedRecencyIterator[Key cmp.Ordered] = Iterator[Key, uint32]
)

// NewLearnedRecencyForest builds an empty next-access-hinted recency
// forest. maxCapacity's FillFactor must exceed minCapacity's, or
// [ErrInvalidFillFactor] is returned.
func NewLearnedRecencyForest[Key cmp.Ordered](minCapacity, maxCapacity Capacity) (*LearnedRecencyForest[Key], error) {
	core, err := newForest[Key, uint32](minCapacity, maxCapacity)
	if err != nil {
		return nil, err
	}
	return &LearnedRecencyForest[Key]{core: core}, nil
}

func (f *LearnedRecencyForest[Key]) Size() int                        { return f.core.Size() }
func (f *LearnedRecencyForest[Key]) SizeAt(level int) int              { return f.core.SizeAt(level) }
func (f *LearnedRecencyForest[Key]) Capacity(level int) (min, max int) { return f.core.Capacity(level) }
func (f *LearnedRecencyForest[Key]) Levels() int                       { return f.core.Levels() }
func (f *LearnedRecencyForest[Key]) Begin() LearnedRecencyIterator[Key] { return f.core.begin() }
func (f *LearnedRecencyForest[Key]) End() LearnedRecencyIterator[Key]   { return f.core.end() }

func (f *LearnedRecencyForest[Key]) Compactions() int    { return f.core.Compactions }
func (f *LearnedRecencyForest[Key]) Promotions() int     { return f.core.Promotions }
func (f *LearnedRecencyForest[Key]) Mispredictions() int { return f.core.Mispredictions }

// Insert places key at the level nextAccess predicts, or the tail if
// nextAccess is [NoPrediction].
func (f *LearnedRecencyForest[Key]) Insert(key Key, nextAccess uint32) LearnedRecencyIterator[Key] {
	if it, ok := f.core.contains(key); ok {
		return it
	}
	level := f.levelFor(nextAccess)
	it := f.core.insert(key, nextAccess, level)
	f.compactLevel(level)
	return it
}

// Find probes starting at the level prevAccess predicts, records
// nextAccess as the key's new metadata, and relocates the key if its new
// predicted level differs from where it was found.
func (f *LearnedRecencyForest[Key]) Find(key Key, prevAccess, nextAccess uint32) LearnedRecencyIterator[Key] {
	prevLevel := f.levelFor(prevAccess)
	it := f.core.find(key, prevLevel)
	if it.End() {
		return it
	}
	level := it.Level()
	nextLevel := f.levelFor(nextAccess)

	it.node.Value = nextAccess
	if nextLevel == level {
		return it
	}
	f.core.erase(it)
	moved := f.core.insert(key, nextAccess, nextLevel)
	f.compactLevel(nextLevel)
	return moved
}

// Erase removes the element it addresses.
func (f *LearnedRecencyForest[Key]) Erase(it LearnedRecencyIterator[Key]) {
	f.core.erase(it)
}

func (f *LearnedRecencyForest[Key]) levelFor(nextAccess uint32) int {
	if nextAccess == uint32(NoPrediction&0xFFFFFFFF) {
		return f.core.Levels() - 1
	}
	level := PredictionToLevel(uint64(nextAccess), f.core.minCapacity)
	if level < 0 {
		level = f.core.Levels() - 1
	}
	return level
}

type accessHeapItem[Key cmp.Ordered] struct {
	key        Key
	nextAccess uint32
}

// accessMinHeap keeps the lowest-nextAccess (soonest, hottest) toMove
// candidates out and the rest in, so the items actually pushed during
// compaction are the largest-nextAccess (farthest, coldest) keys.
type accessMinHeap[Key cmp.Ordered] []accessHeapItem[Key]

func (h accessMinHeap[Key]) Len() int           { return len(h) }
func (h accessMinHeap[Key]) Less(i, j int) bool { return h[i].nextAccess < h[j].nextAccess }
func (h accessMinHeap[Key]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *accessMinHeap[Key]) Push(x any)        { *h = append(*h, x.(accessHeapItem[Key])) }
func (h *accessMinHeap[Key]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// compactLevel cascades, unlike [LearnedFrequencyForest]'s tail-only
// policy: an overflowing non-tail level here reflects a stale
// next-access estimate rather than a placement mismatch, and is corrected
// immediately rather than tolerated.
func (f *LearnedRecencyForest[Key]) compactLevel(level int) {
	min, max := f.core.Capacity(level)
	size := f.core.SizeAt(level)
	if size <= max {
		return
	}
	toMove := size - min

	h := make(accessMinHeap[Key], 0, toMove)
	heap.Init(&h)
	for node := f.core.levelDicts[level].Min(); node != nil; node = node.Next() {
		item := accessHeapItem[Key]{key: node.Key, nextAccess: node.Value}
		if h.Len() < toMove {
			heap.Push(&h, item)
		} else if item.nextAccess > h[0].nextAccess {
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
		f.core.insert(item.key, item.nextAccess, level+1)
	}
	f.compactLevel(level + 1)
}
