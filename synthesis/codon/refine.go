package codon

import "sort"

// defaultVarianceTolerance is the rescue rule's tolerance v from spec
// 4.3 step 3. It is not part of Options -- the spec's closed option set
// does not expose it -- so it is pinned here as the minimal coherent
// value the original (incomplete) Rust source never settled on.
const defaultVarianceTolerance = 0.1

func sortedOrgIDs(tables map[OrganismID]PreferenceTable) []OrganismID {
	ids := make([]OrganismID, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// identifyProhibited returns, for every amino acid, the set of codons that
// are prohibited -- below threshold in at least one organism's table.
// Organisms where the amino acid is entirely unavailable (empty row)
// contribute no information and are skipped for that amino acid. Within a
// row, a codon with no entry counts as preference 0.
func identifyProhibited(tables map[OrganismID]PreferenceTable, threshold float64) map[byte]map[Codon]bool {
	prohibited := make(map[byte]map[Codon]bool)

	orgIDs := sortedOrgIDs(tables)
	for i := 0; i < len(AminoAcidAlphabet); i++ {
		aa := AminoAcidAlphabet[i]
		for _, orgID := range orgIDs {
			row, ok := tables[orgID][aa]
			if !ok {
				continue
			}
			for _, c := range DegeneracyGroup(aa) {
				if row[c] < threshold {
					if prohibited[aa] == nil {
						prohibited[aa] = make(map[Codon]bool)
					}
					prohibited[aa][c] = true
				}
			}
		}
	}

	return prohibited
}

// inaccessibleResidues returns the amino acids whose entire degeneracy
// group is prohibited.
func inaccessibleResidues(prohibited map[byte]map[Codon]bool) []byte {
	var out []byte
	for i := 0; i < len(AminoAcidAlphabet); i++ {
		aa := AminoAcidAlphabet[i]
		group := DegeneracyGroup(aa)
		if len(group) > 0 && len(prohibited[aa]) == len(group) {
			out = append(out, aa)
		}
	}
	return out
}

// rescueInaccessible computes, for each inaccessible amino acid, the set
// of codons rescued back into availability by the running-minimum-variance
// rule from spec 4.3 step 3.
//
// The codons of the degeneracy group are walked in canonical (lexicographic)
// order -- the spec calls the order "arbitrary", but this codebase's
// reproducibility invariant (spec 5) requires every such walk to be
// deterministic, so canonical order is used throughout. A running multiset
// of minimum variances is maintained: the first codon seen always
// bootstraps it (and is therefore always rescued), which is exactly the
// "fallback: rescue the first-seen codon" guarantee from the spec, not a
// separate code path.
func rescueInaccessible(tables map[OrganismID]PreferenceTable, inaccessible []byte, tolerance float64) map[byte]map[Codon]bool {
	rescued := make(map[byte]map[Codon]bool)
	orgIDs := sortedOrgIDs(tables)

	for _, aa := range inaccessible {
		group := DegeneracyGroup(aa)
		minima := make([]float64, 0, len(group))
		rescuedSet := make(map[Codon]bool, len(group))

		for _, c := range group {
			v := variance(tables, orgIDs, aa, c)

			if len(minima) == 0 {
				minima = append(minima, v)
				rescuedSet[c] = true
				continue
			}

			mean := meanOf(minima)
			lower := (1 - tolerance) * mean
			upper := (1 + tolerance) * mean

			switch {
			case v < lower:
				minima = []float64{v}
				rescuedSet[c] = true
			case v >= lower && v <= upper:
				minima = append(minima, v)
				rescuedSet[c] = true
			}
		}

		rescued[aa] = rescuedSet
	}

	return rescued
}

// variance computes the population variance, across organisms, of codon
// c's preference for amino acid aa. Organisms where aa is unavailable
// contribute nothing.
func variance(tables map[OrganismID]PreferenceTable, orgIDs []OrganismID, aa byte, c Codon) float64 {
	var values []float64
	for _, orgID := range orgIDs {
		row, ok := tables[orgID][aa]
		if !ok {
			continue
		}
		values = append(values, row[c])
	}
	if len(values) == 0 {
		return 0
	}

	mean := meanOf(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// RefineTables removes prohibited codons from every organism's preference
// table, rescuing at least one codon per amino acid that would otherwise
// become entirely inaccessible, then renormalizes each organism's rows so
// they again sum to 1. It implements spec 4.3 steps 1-4 in full, completing
// the rescue step the original Rust source (utils.rs::remove_prohibited_codons)
// left as a todo!().
//
// threshold must be in (0, 1); RefineTables fails with ErrInvalidThreshold
// otherwise. An amino acid outside AminoAcidAlphabet observed anywhere in
// tables fails with ErrInvalidAminoAcid.
func RefineTables(tables map[OrganismID]PreferenceTable, threshold float64) (map[OrganismID]PreferenceTable, error) {
	if threshold <= 0 || threshold >= 1 {
		return nil, ErrInvalidThreshold
	}
	for _, table := range tables {
		for aa := range table {
			if !IsValidAminoAcid(aa) {
				return nil, ErrInvalidAminoAcid
			}
		}
	}

	prohibited := identifyProhibited(tables, threshold)
	inaccessible := inaccessibleResidues(prohibited)
	rescued := rescueInaccessible(tables, inaccessible, defaultVarianceTolerance)

	refined := make(map[OrganismID]PreferenceTable, len(tables))
	for orgID, table := range tables {
		refinedTable := make(PreferenceTable, len(table))

		for aa, row := range table {
			prohibitedForAA := prohibited[aa]
			rescuedForAA := rescued[aa]

			corrected := make(map[Codon]float64, len(row))
			for c, pref := range row {
				if prohibitedForAA[c] && !rescuedForAA[c] {
					continue
				}
				corrected[c] = pref
			}

			sum := rowSum(corrected)
			if sum == 0 {
				continue // amino acid becomes unavailable for this organism
			}
			normalized := make(map[Codon]float64, len(corrected))
			for c, pref := range corrected {
				normalized[c] = pref / sum
			}
			refinedTable[aa] = normalized
		}

		refined[orgID] = refinedTable
	}

	return refined, nil
}
