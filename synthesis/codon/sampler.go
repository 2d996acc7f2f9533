package codon

import "sort"

// Interval is a half-open slice [Lo, Hi) of the unit interval assigned to
// Codon during weighted sampling, except for the last interval of a row,
// which is snapped to include 1.0 exactly so that a draw of precisely 1
// (which a well-behaved PRNG source should never itself produce, but
// floating-point accumulation can round up to) still resolves to a codon
// instead of falling through to no match.
type Interval struct {
	Codon  Codon
	Lo, Hi float64
}

// CumulativeTable is a PreferenceTable flattened into per-amino-acid
// cumulative interval lists, ready for O(log n) weighted sampling.
type CumulativeTable map[byte][]Interval

// BuildIntervals converts a PreferenceTable into a CumulativeTable. Within
// a row the intervals are laid out in canonical (lexicographic) codon
// order, each spanning its codon's preference mass; the final interval of
// every non-empty row is widened to end at exactly 1.0.
func BuildIntervals(table PreferenceTable) CumulativeTable {
	out := make(CumulativeTable, len(table))

	for aa, row := range table {
		if len(row) == 0 {
			continue
		}

		group := DegeneracyGroup(aa)
		intervals := make([]Interval, 0, len(row))
		lo := 0.0
		for _, c := range group {
			pref, ok := row[c]
			if !ok {
				continue
			}
			hi := lo + pref
			intervals = append(intervals, Interval{Codon: c, Lo: lo, Hi: hi})
			lo = hi
		}
		if len(intervals) > 0 {
			intervals[len(intervals)-1].Hi = 1.0
		}
		out[aa] = intervals
	}

	return out
}

// floatSource is the minimal PRNG surface Sample needs, satisfied by
// internal/prng.Source. Sample takes this interface rather than that
// concrete type, so any source of floats (such as fixed values in tests)
// can drive it; Optimize is the one that constructs a prng.Source.
type floatSource interface {
	// Float64 returns a pseudorandom value in [0, 1).
	Float64() float64
}

// Sample draws a single codon for amino acid aa from table using rng. It
// fails with *UnavailableResidueError if aa has no entry (or an empty
// entry) in table.
func Sample(aa byte, table CumulativeTable, rng floatSource) (Codon, error) {
	intervals, ok := table[aa]
	if !ok || len(intervals) == 0 {
		return 0, &UnavailableResidueError{AminoAcid: aa}
	}

	draw := rng.Float64()
	i := sort.Search(len(intervals), func(i int) bool {
		return draw < intervals[i].Hi
	})
	if i == len(intervals) {
		i = len(intervals) - 1
	}
	return intervals[i].Codon, nil
}
