package hsf

import (
	"cmp"

	"github.com/djdv/go-hsf/internal/order"
)

type (
	freqMeta[Key cmp.Ordered] = *order.Elem[uint32, Key]

	// FrequencyForest is the self-counting frequency variant: every Find
	// bumps a key's access count and, once it is frequent enough to beat
	// the level above, promotes the key upward. Frequent keys drift toward
	// level 0, where they cost O(log top-level-size) comparisons to find.
	FrequencyForest[Key cmp.Ordered] struct {
		core  *forest[Key, freqMeta[Key]]
		freqs []*order.List[uint32, Key]
	}

	// FrequencyIterator addresses an element of a [FrequencyForest].
	FrequencyIterator[Key cmp.Ordered] = Iterator[Key, freqMeta[Key]]
)

// NewFrequencyForest builds an empty frequency forest. maxCapacity's
// FillFactor must exceed minCapacity's, or [ErrInvalidFillFactor] is
// returned.
func NewFrequencyForest[Key cmp.Ordered](minCapacity, maxCapacity Capacity) (*FrequencyForest[Key], error) {
	core, err := newForest[Key, freqMeta[Key]](minCapacity, maxCapacity)
	if err != nil {
		return nil, err
	}
	return &FrequencyForest[Key]{
		core:  core,
		freqs: []*order.List[uint32, Key]{new(order.List[uint32, Key])},
	}, nil
}

func (f *FrequencyForest[Key]) Size() int                         { return f.core.Size() }
func (f *FrequencyForest[Key]) SizeAt(level int) int               { return f.core.SizeAt(level) }
func (f *FrequencyForest[Key]) Capacity(level int) (min, max int) { return f.core.Capacity(level) }
func (f *FrequencyForest[Key]) Levels() int                        { return f.core.Levels() }
func (f *FrequencyForest[Key]) Begin() FrequencyIterator[Key]      { return f.core.begin() }
func (f *FrequencyForest[Key]) End() FrequencyIterator[Key]        { return f.core.end() }

func (f *FrequencyForest[Key]) Compactions() int    { return f.core.Compactions }
func (f *FrequencyForest[Key]) Promotions() int     { return f.core.Promotions }
func (f *FrequencyForest[Key]) Mispredictions() int { return f.core.Mispredictions }

// ensureLevel grows both the core level vector and the parallel frequency
// index so level is addressable in both.
func (f *FrequencyForest[Key]) ensureLevel(level int) {
	f.core.growTo(level)
	for level >= len(f.freqs) {
		f.freqs = append(f.freqs, new(order.List[uint32, Key]))
	}
}

// Insert adds key with an initial access frequency (0 for a brand-new
// key). A key already present in the forest is left untouched and its
// existing iterator is returned (see DESIGN.md's resolution of the
// duplicate-insert open question).
func (f *FrequencyForest[Key]) Insert(key Key, frequency uint32) FrequencyIterator[Key] {
	if it, ok := f.core.contains(key); ok {
		return it
	}
	level := f.core.Levels() - 1
	for level > 0 && frequency > 0 {
		min := f.freqs[level-1].Min()
		if min == nil || frequency < min.Key {
			break
		}
		level--
	}
	elem := f.freqs[level].Insert(frequency, key)
	it := f.core.insert(key, elem, level)
	f.compactLevel(level)
	return it
}

// Find locates key starting at hint, bumps its access frequency by one,
// and promotes it past any upper level whose coldest key it now beats.
func (f *FrequencyForest[Key]) Find(key Key, hint int) FrequencyIterator[Key] {
	it := f.core.find(key, hint)
	if it.End() {
		return it
	}
	level := it.Level()
	old := f.metaOf(it)
	newFreq := old.Key + 1
	f.freqs[level].Delete(old)

	newLevel := level
	for newLevel > 0 {
		min := f.freqs[newLevel-1].Min()
		if min == nil || newFreq <= min.Key {
			break
		}
		newLevel--
	}

	elem := f.freqs[newLevel].Insert(newFreq, key)
	f.setMeta(it, elem)
	if newLevel == level {
		return it
	}

	f.core.erase(it)
	moved := f.core.insert(key, elem, newLevel)
	f.compactLevel(newLevel)
	f.fillLevel(level)
	return moved
}

// Erase removes the element it addresses.
func (f *FrequencyForest[Key]) Erase(it FrequencyIterator[Key]) {
	if it.End() {
		return
	}
	level := it.Level()
	f.freqs[level].Delete(f.metaOf(it))
	f.core.erase(it)
	f.fillLevel(level)
}

func (f *FrequencyForest[Key]) metaOf(it FrequencyIterator[Key]) *order.Elem[uint32, Key] {
	return it.node.Value
}

func (f *FrequencyForest[Key]) setMeta(it FrequencyIterator[Key], elem *order.Elem[uint32, Key]) {
	it.node.Value = elem
}

// moveKey relocates key's frequency entry and dictionary entry from from
// to to, preserving its recorded frequency.
func (f *FrequencyForest[Key]) moveKey(key Key, from, to int) {
	it := f.core.find(key, from)
	if it.End() {
		return
	}
	freq := f.metaOf(it).Key
	f.freqs[from].Delete(f.metaOf(it))
	elem := f.freqs[to].Insert(freq, key)
	f.core.erase(it)
	f.core.insert(key, elem, to)
}

// compactLevel moves size(level)-min_cap(level) coldest (lowest-frequency)
// keys from level to level+1 whenever level overflows its max capacity,
// cascading downward until every level settles within its band.
func (f *FrequencyForest[Key]) compactLevel(level int) {
	for {
		min, max := f.core.Capacity(level)
		size := f.core.SizeAt(level)
		if size <= max {
			return
		}
		f.ensureLevel(level + 1)
		toMove := size - min
		for i := 0; i < toMove; i++ {
			coldest := f.freqs[level].Min()
			if coldest == nil {
				break
			}
			f.moveKey(coldest.Value, level, level+1)
		}
		assert(f.freqs[level].Len() == f.core.SizeAt(level), "frequency index out of sync with level size")
		level++
	}
}

// fillLevel pulls the coldest key out of level-1 into level whenever level
// has fallen below its min capacity, cascading upward since level-1 may
// now itself be under-full.
func (f *FrequencyForest[Key]) fillLevel(level int) {
	for {
		min, _ := f.core.Capacity(level)
		if level == 0 || level == f.core.Levels()-1 || f.core.SizeAt(level) >= min {
			return
		}
		coldestAbove := f.freqs[level-1].Min()
		if coldestAbove == nil {
			return
		}
		if hottest := f.freqs[level].Max(); hottest != nil {
			assert(coldestAbove.Key >= hottest.Key, "fill would violate frequency ordering")
		}
		f.moveKey(coldestAbove.Value, level-1, level)
		level--
	}
}

// MinFrequency returns the lowest recorded frequency at level, and false
// if the level is empty.
func (f *FrequencyForest[Key]) MinFrequency(level int) (uint32, bool) {
	if level < 0 || level >= len(f.freqs) {
		return 0, false
	}
	if e := f.freqs[level].Min(); e != nil {
		return e.Key, true
	}
	return 0, false
}

// MaxFrequency returns the highest recorded frequency at level, and false
// if the level is empty.
func (f *FrequencyForest[Key]) MaxFrequency(level int) (uint32, bool) {
	if level < 0 || level >= len(f.freqs) {
		return 0, false
	}
	if e := f.freqs[level].Max(); e != nil {
		return e.Key, true
	}
	return 0, false
}
