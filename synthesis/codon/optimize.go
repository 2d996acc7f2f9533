package codon

import (
	"github.com/nleroy917/multimizer-go/internal/prng"
)

// alphaBlend is the step size of the adjustment rule in spec 4.7's
// Adjusting state: the fraction of a deviating host's refined table
// blended into the working sampling table each iteration. It is not part
// of Options -- the original Rust optimizer (optimizations.rs) never
// implemented this step at all, only sketching it in comments -- so this
// is the minimal coherent value completing that sketch, matching the
// 0.05 figure named directly in spec 4.7.
const alphaBlend = 0.05

// Options configures a single Optimize run. The zero value is not usable;
// call DefaultOptions and override individual fields.
type Options struct {
	// MaxIterations bounds the Sampling/Scoring/Adjusting loop.
	MaxIterations int
	// Seed drives the deterministic PRNG; the same seed with the same
	// inputs always reproduces the same Result.
	Seed int64
	// ProhibitedPreferenceThreshold is passed to RefineTables.
	ProhibitedPreferenceThreshold float64
	// MinError stops the loop early once the sum-of-squares error between
	// predicted and target expression ratios falls to or below this value.
	MinError float64
	// ExpressionTolerance is spread across the host-to-host comparisons a
	// deviation represents (spec 4.7 step 5): a host is deviating only if
	// |predicted(o) - target(o)| > ExpressionTolerance / max(1, hosts-1).
	// Hosts within that band are left out of the Adjusting step's blend.
	ExpressionTolerance float64
}

// DefaultOptions mirrors the OptimizationOptions defaults named in the
// original Rust source (multimizer-core/src/optimizations.rs).
func DefaultOptions() Options {
	return Options{
		MaxIterations:                 1000,
		Seed:                          42,
		ProhibitedPreferenceThreshold: 0.1,
		MinError:                      0.01,
		ExpressionTolerance:           0,
	}
}

// Result is the outcome of a single Optimize run.
type Result struct {
	Sequence    string
	Translation string
	Iterations  int
	RCA         map[OrganismID]float64
	Error       float64
}

// Optimize designs a DNA sequence encoding query (a protein, or a DNA
// sequence that is translated first) so that its predicted relative
// expression across the hosts in countsByOrg approaches the ratio given by
// weights.
//
// It implements spec 4.7's Init / Sampling / Scoring / Adjusting state
// machine: usage counts are turned into preference tables and refined to
// remove prohibited codons (4.3), refined tables are weight-averaged into
// one sampling table (4.4), a sequence is stochastically sampled from it
// (4.5) and scored per host by RCAxyz (4.6), and hosts whose predicted
// expression deviates from their target are blended back toward their own
// refined table (4.7) before the next iteration.
func Optimize(query string, countsByOrg map[OrganismID]CodonCounts, weights SpeciesWeights, opts Options) (*Result, error) {
	if len(countsByOrg) == 0 {
		return nil, errNoOrganisms
	}

	protein, err := proteinOf(query)
	if err != nil {
		return nil, err
	}

	rawTables := make(map[OrganismID]PreferenceTable, len(countsByOrg))
	for orgID, counts := range countsByOrg {
		rawTables[orgID] = CountsToFractions(counts)
	}

	refined, err := RefineTables(rawTables, opts.ProhibitedPreferenceThreshold)
	if err != nil {
		return nil, err
	}

	target := normalizeMinIsOne(weights)
	for orgID := range refined {
		if _, ok := target[orgID]; !ok {
			return nil, ErrInvalidWeights
		}
	}

	rcaTables := make(map[OrganismID]RCAxyzTable, len(refined))
	for orgID, table := range refined {
		rcaTables[orgID] = ComputeRCAxyz(table)
	}

	sampling, err := Average(refined, target)
	if err != nil {
		return nil, err
	}

	rng := prng.NewSource(opts.Seed)

	minNoImprove := opts.MaxIterations / 64
	if minNoImprove < 16 {
		minNoImprove = 16
	}

	var (
		bestSeq         string
		bestTranslation string
		bestScores      map[OrganismID]float64
		bestErr         = -1.0
		sinceImprove    int
		completed       int
	)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		completed++
		intervals := BuildIntervals(sampling)

		seq := make([]byte, 0, len(protein)*3)
		for i := 0; i < len(protein); i++ {
			c, err := Sample(protein[i], intervals, rng)
			if err != nil {
				return nil, err
			}
			seq = append(seq, c.Spell()...)
		}
		sequence := string(seq)

		scores, err := PredictedExpression(sequence, rcaTables)
		if err != nil {
			return nil, err
		}

		// Spec 4.7 step 5 spreads the tolerance across the host-to-host
		// comparisons a deviation actually represents: with more hosts,
		// each pairwise comparison gets a proportionally tighter band.
		hostSpread := len(scores) - 1
		if hostSpread < 1 {
			hostSpread = 1
		}
		deviationThreshold := opts.ExpressionTolerance / float64(hostSpread)

		sqErr := 0.0
		deviation := make(map[OrganismID]float64, len(scores))
		for orgID, predicted := range scores {
			diff := target[orgID] - predicted
			sqErr += diff * diff
			if abs(diff) > deviationThreshold {
				deviation[orgID] = diff
			}
		}

		if bestErr < 0 || sqErr < bestErr {
			bestErr = sqErr
			bestSeq = sequence
			bestTranslation = protein
			bestScores = scores
			sinceImprove = 0
		} else {
			sinceImprove++
		}

		if sqErr <= opts.MinError {
			break
		}
		if sinceImprove >= minNoImprove {
			break
		}

		sampling = blendTowardDeviating(sampling, refined, deviation, alphaBlend)
	}

	return &Result{
		Sequence:    bestSeq,
		Translation: bestTranslation,
		Iterations:  completed,
		RCA:         bestScores,
		Error:       bestErr,
	}, nil
}

// proteinOf returns the amino acid sequence to optimize over: query
// itself if it is already a protein, or its translation if it is DNA.
func proteinOf(query string) (string, error) {
	kind, err := DetectSequenceType(query)
	if err != nil {
		return "", err
	}
	if kind == Protein {
		return query, nil
	}
	return TranslateDNA(query)
}

// blendTowardDeviating nudges current toward the refined tables of
// deviating hosts, weighted by how far each host's predicted expression
// fell from its target: a host far from its target pulls the sampling
// table harder than one just outside tolerance. Hosts absent from
// deviation are left alone entirely. Rows are renormalized to sum to 1
// after blending.
func blendTowardDeviating(current PreferenceTable, refined map[OrganismID]PreferenceTable, deviation map[OrganismID]float64, alpha float64) PreferenceTable {
	if len(deviation) == 0 {
		return current
	}

	totalWeight := 0.0
	for _, d := range deviation {
		totalWeight += abs(d)
	}
	if totalWeight == 0 {
		return current
	}

	out := make(PreferenceTable, len(current))
	for i := 0; i < len(AminoAcidAlphabet); i++ {
		aa := AminoAcidAlphabet[i]
		group := DegeneracyGroup(aa)
		row, ok := current[aa]
		if !ok || len(group) == 0 {
			continue
		}

		blended := make(map[Codon]float64, len(group))
		for _, c := range group {
			pull := 0.0
			for orgID, d := range deviation {
				refRow, ok := refined[orgID][aa]
				if !ok {
					continue
				}
				w := abs(d) / totalWeight
				pull += w * refRow[c]
			}
			blended[c] = (1-alpha)*row[c] + alpha*pull
		}

		sum := rowSum(blended)
		if sum == 0 {
			continue
		}
		normalized := make(map[Codon]float64, len(group))
		for c, v := range blended {
			normalized[c] = v / sum
		}
		out[aa] = normalized
	}

	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
