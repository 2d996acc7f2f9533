package codon

// CodonCounts is raw per-organism codon usage: codon -> observed count.
// The usage-store adapter (see the store package) is responsible for the
// "every codon present" invariant; a missing entry here is treated as
// zero.
type CodonCounts map[Codon]uint64

// PreferenceTable maps an amino acid to the fractional preference of each
// of its surviving codons. A non-empty row always sums to 1 within
// numerical tolerance. An amino acid with no entry, or an empty entry, is
// "unavailable" -- none of its codons were ever observed.
type PreferenceTable map[byte]map[Codon]float64

// CountsToFractions turns raw per-codon counts into a PreferenceTable: for
// every amino acid A, each of its codons gets count(c) / sum(counts over
// A's degeneracy group). If that sum is zero, A's row is omitted entirely
// (A is unavailable).
func CountsToFractions(counts CodonCounts) PreferenceTable {
	table := make(PreferenceTable, len(AminoAcidAlphabet))

	for i := 0; i < len(AminoAcidAlphabet); i++ {
		aa := AminoAcidAlphabet[i]
		group := DegeneracyGroup(aa)

		var sum uint64
		for _, c := range group {
			sum += counts[c]
		}
		if sum == 0 {
			continue
		}

		row := make(map[Codon]float64, len(group))
		for _, c := range group {
			row[c] = float64(counts[c]) / float64(sum)
		}
		table[aa] = row
	}

	return table
}

// rowSum sums the preferences in a table row; it is 0 for a nil/empty row.
func rowSum(row map[Codon]float64) float64 {
	var s float64
	for _, v := range row {
		s += v
	}
	return s
}
