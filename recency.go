package hsf

import (
	"cmp"

	"github.com/djdv/go-hsf/internal/reclist"
)

type (
	recMeta[Key cmp.Ordered] = *reclist.Node[Key]

	// RecencyForest is the self-counting recency variant: every Find moves
	// the found key to level 0 and splices its recency-list node to the
	// front of that level's list, so repeatedly accessed keys float toward
	// the hottest level the same way an LRU list promotes its front.
	RecencyForest[Key cmp.Ordered] struct {
		core *forest[Key, recMeta[Key]]
		recs []*reclist.List[Key]
	}

	// RecencyIterator addresses an element of a [RecencyForest].
	RecencyIterator[Key cmp.Ordered] = Iterator[Key, recMeta[Key]]
)

// NewRecencyForest builds an empty recency forest. maxCapacity's
// FillFactor must exceed minCapacity's, or [ErrInvalidFillFactor] is
// returned.
func NewRecencyForest[Key cmp.Ordered](minCapacity, maxCapacity Capacity) (*RecencyForest[Key], error) {
	core, err := newForest[Key, recMeta[Key]](minCapacity, maxCapacity)
	if err != nil {
		return nil, err
	}
	return &RecencyForest[Key]{
		core: core,
		recs: []*reclist.List[Key]{new(reclist.List[Key])},
	}, nil
}

func (f *RecencyForest[Key]) Size() int                         { return f.core.Size() }
func (f *RecencyForest[Key]) SizeAt(level int) int               { return f.core.SizeAt(level) }
func (f *RecencyForest[Key]) Capacity(level int) (min, max int)  { return f.core.Capacity(level) }
func (f *RecencyForest[Key]) Levels() int                        { return f.core.Levels() }
func (f *RecencyForest[Key]) Begin() RecencyIterator[Key]        { return f.core.begin() }
func (f *RecencyForest[Key]) End() RecencyIterator[Key]          { return f.core.end() }

func (f *RecencyForest[Key]) Compactions() int    { return f.core.Compactions }
func (f *RecencyForest[Key]) Promotions() int     { return f.core.Promotions }
func (f *RecencyForest[Key]) Mispredictions() int { return f.core.Mispredictions }

// ensureLevel grows both the core level vector and the parallel recency
// list index so level is addressable in both.
func (f *RecencyForest[Key]) ensureLevel(level int) {
	f.core.growTo(level)
	for level >= len(f.recs) {
		f.recs = append(f.recs, new(reclist.List[Key]))
	}
}

// Insert places key at the most-recent position of the tail level. A key
// already present is left untouched and its existing iterator returned.
func (f *RecencyForest[Key]) Insert(key Key) RecencyIterator[Key] {
	if it, ok := f.core.contains(key); ok {
		return it
	}
	level := f.core.Levels() - 1
	node := f.recs[level].PushFront(key)
	it := f.core.insert(key, node, level)
	f.compactLevel(level)
	return it
}

// Find locates key starting at hint. A hit at any level above 0 is
// promoted to level 0 and spliced to the front of its recency list.
func (f *RecencyForest[Key]) Find(key Key, hint int) RecencyIterator[Key] {
	it := f.core.find(key, hint)
	if it.End() {
		return it
	}
	level := it.Level()
	if level == 0 {
		f.recs[0].MoveToFront(f.metaOf(it))
		return it
	}

	f.ensureLevel(0)
	node := f.metaOf(it)
	f.recs[0].MoveToFront(node)
	f.core.erase(it)
	moved := f.core.insert(key, node, 0)
	f.compactLevel(0)
	f.fillLevel(level)
	return moved
}

// Erase removes the element it addresses.
func (f *RecencyForest[Key]) Erase(it RecencyIterator[Key]) {
	if it.End() {
		return
	}
	level := it.Level()
	f.recs[level].Remove(f.metaOf(it))
	f.core.erase(it)
	f.fillLevel(level)
}

func (f *RecencyForest[Key]) metaOf(it RecencyIterator[Key]) *reclist.Node[Key] {
	return it.node.Value
}

// moveKey relocates key's recency-list node and dictionary entry from
// from to to, splicing the existing node to the front of to's list so its
// identity (and thus any long-lived handle to it) survives the move.
func (f *RecencyForest[Key]) moveKey(key Key, from, to int) {
	it := f.core.find(key, from)
	if it.End() {
		return
	}
	node := f.metaOf(it)
	f.ensureLevel(to)
	f.recs[to].MoveToFront(node)
	f.core.erase(it)
	f.core.insert(key, node, to)
}

// compactLevel moves size(level)-min_cap(level) least-recent keys from
// level to level+1 whenever level overflows, cascading downward.
func (f *RecencyForest[Key]) compactLevel(level int) {
	for {
		min, max := f.core.Capacity(level)
		size := f.core.SizeAt(level)
		if size <= max {
			return
		}
		f.ensureLevel(level + 1)
		toMove := size - min
		for i := 0; i < toMove; i++ {
			leastRecent := f.recs[level].Back()
			if leastRecent == nil {
				break
			}
			f.moveKey(leastRecent.Key, level, level+1)
		}
		assert(f.recs[level].Len() == f.core.SizeAt(level), "recency list out of sync with level size")
		level++
	}
}

// fillLevel pulls the least-recent key out of level-1 into level whenever
// level has fallen below its min capacity, cascading upward.
func (f *RecencyForest[Key]) fillLevel(level int) {
	for {
		min, _ := f.core.Capacity(level)
		if level == 0 || level == f.core.Levels()-1 || f.core.SizeAt(level) >= min {
			return
		}
		leastRecentAbove := f.recs[level-1].Back()
		if leastRecentAbove == nil {
			return
		}
		f.moveKey(leastRecentAbove.Key, level-1, level)
		level--
	}
}
