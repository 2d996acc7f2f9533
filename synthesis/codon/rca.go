package codon

import (
	"math"
	"sort"
)

// RCAxyzTable holds the position-wise, base-frequency-normalized codon
// adaptation weight for every codon observed in the preference table it
// was built from. A codon absent from the table (none of its amino acid's
// usages were ever observed) has no entry.
type RCAxyzTable map[Codon]float64

// ComputeRCAxyz derives the RCAxyz weight of every codon present in table.
// For a codon c = xyz with preference p, RCAxyz(c) = p / (Fx * Fy * Fz),
// where Fx, Fy, Fz are the frequencies of bases x, y, z at their
// respective codon position, pooled across every codon in table (not just
// c's own degeneracy group). A codon whose position-wise base product is
// zero gets weight 0 rather than a division by zero.
func ComputeRCAxyz(table PreferenceTable) RCAxyzTable {
	var posFreq [3]map[byte]float64
	for i := range posFreq {
		posFreq[i] = make(map[byte]float64, 4)
	}

	total := 0.0
	for _, row := range table {
		for c, pref := range row {
			spelling := c.Spell()
			for i := 0; i < 3; i++ {
				posFreq[i][spelling[i]] += pref
			}
			total += pref
		}
	}

	out := make(RCAxyzTable)
	if total == 0 {
		return out
	}
	for i := range posFreq {
		for b := range posFreq[i] {
			posFreq[i][b] /= total
		}
	}

	for _, row := range table {
		for c, pref := range row {
			spelling := c.Spell()
			denom := posFreq[0][spelling[0]] * posFreq[1][spelling[1]] * posFreq[2][spelling[2]]
			if denom == 0 {
				out[c] = 0
				continue
			}
			out[c] = pref / denom
		}
	}

	return out
}

// RCA scores a DNA sequence against an RCAxyz table as the geometric mean
// of each codon's weight, taken over all n codons of the sequence -- not
// just the ones with a table entry. A codon present in table with a
// legitimate zero weight (ComputeRCAxyz produces these when a codon's
// position-wise base product is zero) still multiplies into the product,
// driving the whole score to 0, exactly as the original Rust compute_rca
// does. Only a codon entirely absent from table is skipped, since it
// carries no information at all. If no codon in seq has any entry in
// table, RCA returns 0 directly rather than silently falling back to the
// geometric mean's identity value of 1. RCA of the empty sequence is
// defined as 0, not an error.
func RCA(seq string, table RCAxyzTable) (float64, error) {
	if len(seq)%3 != 0 {
		return 0, ErrNotDivisibleByThree
	}
	if len(seq) == 0 {
		return 0, nil
	}

	n := len(seq) / 3
	logSum := 0.0
	found := 0
	for i := 0; i < len(seq); i += 3 {
		c, err := ParseCodon(seq[i : i+3])
		if err != nil {
			return 0, err
		}
		w, ok := table[c]
		if !ok {
			continue
		}
		found++
		logSum += math.Log(w)
	}
	if found == 0 {
		return 0, nil
	}

	return math.Exp(logSum / float64(n)), nil
}

// PredictedExpression scores seq against every host's RCAxyz table and
// normalizes the results so the lowest-scoring host becomes exactly 1,
// giving a relative expression ratio across hosts. If the lowest score is
// 0 (for example when every host scores 0), PredictedExpression returns
// the raw, unnormalized scores rather than dividing by zero.
func PredictedExpression(seq string, tables map[OrganismID]RCAxyzTable) (map[OrganismID]float64, error) {
	raw := make(map[OrganismID]float64, len(tables))
	min := 0.0
	first := true

	orgIDs := make([]OrganismID, 0, len(tables))
	for id := range tables {
		orgIDs = append(orgIDs, id)
	}
	sort.Slice(orgIDs, func(i, j int) bool { return orgIDs[i] < orgIDs[j] })

	for _, id := range orgIDs {
		score, err := RCA(seq, tables[id])
		if err != nil {
			return nil, err
		}
		raw[id] = score
		if first || score < min {
			min = score
			first = false
		}
	}

	out := make(map[OrganismID]float64, len(raw))
	if min == 0 {
		return raw, nil
	}

	for id, v := range raw {
		out[id] = v / min
	}
	return out, nil
}
