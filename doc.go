// Package hsf implements a hinted search forest: an ordered associative
// container that spreads keys across a sequence of geometrically growing
// levels, so that a workload's hot keys cost far less to find than a
// single balanced dictionary over the whole key set would cost them.
//
// Four variants are provided, differing only in how a key's level is
// chosen and how keys drift between levels on access:
//
//   - [FrequencyForest]: self-counting by access frequency.
//   - [LearnedFrequencyForest]: placed by a caller-supplied rank.
//   - [RecencyForest]: self-counting, most-recently-found key floats to
//     level 0.
//   - [LearnedRecencyForest]: placed by a caller-supplied estimate of the
//     key's next access.
//
// Glossary and invariants:
//
//   - Level: an ordered dictionary at a fixed depth in the forest; lower
//     index = hotter. Level 0 is checked first by a zero hint.
//
//   - Capacity band: the [min_cap(L), max_cap(L)] interval, computed by a
//     [Capacity] policy, within which a level's size should rest at
//     steady state.
//
//   - Compaction: moving the coldest keys of an overflowed level to the
//     next-colder level, cascading if that overflows it in turn.
//
//   - Fill: promoting the coldest key of the next-hotter level to refill
//     an under-full upper level, cascading toward level 0.
//
//   - Hint: a caller-provided level index at which Find should begin
//     probing; probing fans forward only (hint, hint+1, ...).
//
//   - Misprediction: a Find whose key was located at a level other than
//     the hinted one. Counted, never penalized beyond the extra probe.
//
// Operations:
//
//   - Insert places a new key at a level chosen by the variant's policy,
//     then compacts that level if it now overflows. A key already
//     present is left untouched; its existing iterator is returned.
//
//   - Find locates a key starting from a hint (or a caller-supplied
//     prediction, for the learned variants), and in the self-counting
//     variants also promotes/demotes the key and repairs the levels it
//     moved between. [LearnedRecencyForest]'s Find moves the key to the
//     level its new next-access estimate predicts and compacts that level.
//
//   - Erase removes the element an iterator addresses and, in the
//     self-counting variants, refills the level it left if that level
//     fell below its minimum capacity.
//
// Iterators are level-qualified: Next only advances within the level it
// was found at. Moving a key between levels — anything a self-counting
// variant's Find or [LearnedRecencyForest]'s Find might do — invalidates any iterator that addressed the
// key's previous location.
package hsf
