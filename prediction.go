package hsf

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// NoPrediction is the sentinel rank/next-access value meaning "no
// prediction available". It is the maximum value of the unsigned
// prediction domain, matching the source's use of -1 for this purpose.
const NoPrediction = ^uint64(0)

// PredictionToLevel returns the smallest level L such that
// prediction < sum(capacity.At(0..L)). NoPrediction is special-cased to -1,
// which callers interpret as "route to the current tail level" rather than
// as a real level index (the cumulative sum is otherwise unbounded).
func PredictionToLevel(prediction uint64, capacity Capacity) int {
	if prediction == NoPrediction {
		return -1
	}
	var offset uint64
	for level := 0; ; level++ {
		offset += uint64(capacity.At(level))
		if prediction < offset {
			return level
		}
	}
}

// Hash maps a Key to a 64-bit digest for use by [PredictionSketch]. Callers
// whose Key is not byte-representable via [HashBytes] provide their own.
type Hash[Key comparable] func(Key) uint64

// HashBytes adapts a byte-slicing function into a [Hash] using xxhash,
// the same width-fixing hash the rest of the retrieval pack's admission
// sketches (count-min/TinyLFU style) use ahead of per-row salting.
func HashBytes[Key comparable](toBytes func(Key) []byte) Hash[Key] {
	return func(key Key) uint64 {
		return xxhash.Sum64(toBytes(key))
	}
}

const (
	sketchPrime     = uint64(1<<31 - 1) // INT_MAX on a 32-bit int, as in the source.
	sketchEmptyCell = 0xFF
)

// PredictionSketch is a compact count-min-style table for caching small
// (uint8) per-key predictions when a caller cannot supply them directly.
// It is not in the read path of any forest: no variant, learned or
// self-counting, consults it.
type PredictionSketch[Key comparable] struct {
	hash      Hash[Key]
	table     [][]uint8
	collision [][]bool
	a, b      []uint64
	cols      int
}

// NewPredictionSketch builds a sketch with rows hash functions and cols
// buckets per row.
func NewPredictionSketch[Key comparable](rows, cols int, hash Hash[Key]) *PredictionSketch[Key] {
	s := &PredictionSketch[Key]{
		hash:      hash,
		table:     make([][]uint8, rows),
		collision: make([][]bool, rows),
		a:         make([]uint64, rows),
		b:         make([]uint64, rows),
		cols:      cols,
	}
	rng := rand.New(rand.NewPCG(2241, 2241)) // Fixed seed: reproducible salts across runs.
	for i := range rows {
		s.table[i] = make([]uint8, cols)
		for j := range s.table[i] {
			s.table[i][j] = sketchEmptyCell
		}
		s.collision[i] = make([]bool, cols)
		s.a[i] = 1 + rng.Uint64()%(sketchPrime-1)
		s.b[i] = rng.Uint64() % sketchPrime
	}
	return s
}

func (s *PredictionSketch[Key]) index(key Key, row int) int {
	x := s.hash(key)
	return int((s.a[row]*x + s.b[row]) % sketchPrime % uint64(s.cols))
}

// Insert writes value into every row, min-aggregating (and flagging a
// collision) where a row's cell was already written.
func (s *PredictionSketch[Key]) Insert(key Key, value uint8) {
	for row := range s.table {
		col := s.index(key, row)
		cell := s.table[row][col]
		if cell == sketchEmptyCell {
			s.table[row][col] = value
			continue
		}
		s.collision[row][col] = true
		if value < cell {
			s.table[row][col] = value
		}
	}
}

// Update writes value into every row, overwriting rows whose cell has
// never collided and min-aggregating the rest.
func (s *PredictionSketch[Key]) Update(key Key, value uint8) {
	for row := range s.table {
		col := s.index(key, row)
		if !s.collision[row][col] {
			s.table[row][col] = value
			continue
		}
		if value < s.table[row][col] {
			s.table[row][col] = value
		}
	}
}

// Get returns the most conservative (maximum) prediction across rows.
func (s *PredictionSketch[Key]) Get(key Key) uint8 {
	var result uint8
	for row := range s.table {
		cell := s.table[row][s.index(key, row)]
		if cell > result {
			result = cell
		}
	}
	return result
}
