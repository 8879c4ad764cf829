package hsf

import (
	"cmp"
	"math"

	"github.com/djdv/go-hsf/internal/order"
)

// endLevel is the sentinel level index carried by [Iterator.End] results.
const endLevel = math.MaxInt

// Iterator identifies an element by the level it lives at and a handle into
// that level's dictionary. Two iterators compare equal (via ==) iff both
// their level and handle match. Moving a key between levels — which the
// frequency and recency variants' Find does — invalidates any iterator
// that pointed at the key's previous location; callers must not hold an
// iterator across a mutating call.
type Iterator[Key cmp.Ordered, Meta any] struct {
	node  *order.Node[Key, Meta]
	level int
}

// End reports whether it is the past-the-end sentinel.
func (it Iterator[Key, Meta]) End() bool { return it.level == endLevel }

// Level returns the level it was found at, or [endLevel] if it is End.
func (it Iterator[Key, Meta]) Level() int { return it.level }

// Key returns the key it addresses. It must not be End.
func (it Iterator[Key, Meta]) Key() Key { return it.node.Key }

// Next advances it to the next element within the same level, in key
// order. The core exposes only within-level traversal; full-forest
// iteration is the caller's responsibility, level by level from [Begin].
func (it Iterator[Key, Meta]) Next() Iterator[Key, Meta] {
	if it.End() {
		return it
	}
	if next := it.node.Next(); next != nil {
		return Iterator[Key, Meta]{node: next, level: it.level}
	}
	return Iterator[Key, Meta]{level: endLevel}
}

// forest is the shared skeleton every variant embeds: a growable sequence
// of level dictionaries plus the min/max capacity policy and the three
// debug counters. It is generic over the per-variant metadata stored
// alongside each key; variants own the policy for choosing a key's level
// and for selecting which keys move during compaction/fill.
type forest[Key cmp.Ordered, Meta any] struct {
	levelDicts  []*order.Tree[Key, Meta]
	minCapacity Capacity
	maxCapacity Capacity
	total       int

	Compactions, Promotions, Mispredictions int
}

func newForest[Key cmp.Ordered, Meta any](minCapacity, maxCapacity Capacity) (*forest[Key, Meta], error) {
	if maxCapacity.FillFactor <= minCapacity.FillFactor {
		return nil, fillFactorError(minCapacity, maxCapacity)
	}
	return &forest[Key, Meta]{
		levelDicts:  []*order.Tree[Key, Meta]{new(order.Tree[Key, Meta])},
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
	}, nil
}

// Size returns the total number of keys across all levels.
func (f *forest[Key, Meta]) Size() int { return f.total }

// SizeAt returns the number of keys at level, or 0 if level is out of range.
func (f *forest[Key, Meta]) SizeAt(level int) int {
	if level < 0 || level >= len(f.levelDicts) {
		return 0
	}
	return f.levelDicts[level].Len()
}

// Capacity returns the [min, max] size band for level.
func (f *forest[Key, Meta]) Capacity(level int) (min, max int) {
	return f.minCapacity.At(level), f.maxCapacity.At(level)
}

// Levels returns the current number of live levels.
func (f *forest[Key, Meta]) Levels() int { return len(f.levelDicts) }

// growTo appends empty levels, if necessary, so that level is in range.
func (f *forest[Key, Meta]) growTo(level int) {
	for level >= len(f.levelDicts) {
		f.levelDicts = append(f.levelDicts, new(order.Tree[Key, Meta]))
	}
}

// end returns the past-the-end sentinel.
func (f *forest[Key, Meta]) end() Iterator[Key, Meta] {
	return Iterator[Key, Meta]{level: endLevel}
}

// begin returns the first element of the lowest-indexed non-empty level.
func (f *forest[Key, Meta]) begin() Iterator[Key, Meta] {
	for level, dict := range f.levelDicts {
		if dict.Len() > 0 {
			return Iterator[Key, Meta]{node: dict.Min(), level: level}
		}
	}
	return f.end()
}

// find probes levels hint, hint+1, ... up to the tail and returns the
// first hit, or end() if key is nowhere in the forest.
func (f *forest[Key, Meta]) find(key Key, hint int) Iterator[Key, Meta] {
	if hint < 0 {
		hint = 0
	}
	for level := hint; level < len(f.levelDicts); level++ {
		if node, ok := f.levelDicts[level].Find(key); ok {
			if level != hint {
				f.Mispredictions++
			}
			return Iterator[Key, Meta]{node: node, level: level}
		}
	}
	f.Mispredictions++
	return f.end()
}

// contains reports whether key exists anywhere in the forest, without
// touching the misprediction counter (used for duplicate-insert checks,
// not for a caller-facing lookup).
func (f *forest[Key, Meta]) contains(key Key) (Iterator[Key, Meta], bool) {
	for level, dict := range f.levelDicts {
		if node, ok := dict.Find(key); ok {
			return Iterator[Key, Meta]{node: node, level: level}, true
		}
	}
	return f.end(), false
}

// insert adds key/meta at level, growing the level vector if needed, and
// increments Compactions if the level now exceeds its max capacity (the
// variant is responsible for calling its own compactLevel next).
func (f *forest[Key, Meta]) insert(key Key, meta Meta, level int) Iterator[Key, Meta] {
	f.growTo(level)
	node := f.levelDicts[level].Insert(key, meta)
	f.total++
	if _, max := f.Capacity(level); f.levelDicts[level].Len() > max {
		f.Compactions++
	}
	return Iterator[Key, Meta]{node: node, level: level}
}

// erase removes the element it addresses and increments Promotions if the
// level underflows below its min capacity (and is not the tail). Does not
// cascade; the variant's fillLevel is responsible for that.
func (f *forest[Key, Meta]) erase(it Iterator[Key, Meta]) {
	if it.End() {
		return
	}
	assert(it.level < len(f.levelDicts), "erase: level out of range")
	f.levelDicts[it.level].Delete(it.node)
	f.total--
	min, _ := f.Capacity(it.level)
	if it.level != len(f.levelDicts)-1 && f.levelDicts[it.level].Len() < min {
		f.Promotions++
	}
}
