package codon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCounts(t *testing.T, gctCount, gccCount, gcaCount, gcgCount uint64) CodonCounts {
	t.Helper()
	return CodonCounts{
		alaCodon(t, "GCT"): gctCount,
		alaCodon(t, "GCC"): gccCount,
		alaCodon(t, "GCA"): gcaCount,
		alaCodon(t, "GCG"): gcgCount,
	}
}

func TestOptimizeIsReproducibleWithSameSeed(t *testing.T) {
	counts := map[OrganismID]CodonCounts{
		1: sampleCounts(t, 10, 20, 30, 40),
		2: sampleCounts(t, 40, 30, 20, 10),
	}
	weights := EqualWeights([]OrganismID{1, 2})
	opts := DefaultOptions()
	opts.MaxIterations = 25

	// "AAA" alone would be read as DNA (lysine), so the three-alanine
	// query is given as DNA.
	r1, err := Optimize("GCTGCTGCT", counts, weights, opts)
	assert.NoError(t, err)

	r2, err := Optimize("GCTGCTGCT", counts, weights, opts)
	assert.NoError(t, err)

	assert.Equal(t, r1.Sequence, r2.Sequence)
	assert.Equal(t, r1.Iterations, r2.Iterations)
}

func TestOptimizeTranslatesDNAQuery(t *testing.T) {
	counts := map[OrganismID]CodonCounts{
		1: sampleCounts(t, 10, 20, 30, 40),
	}
	weights := EqualWeights([]OrganismID{1})
	opts := DefaultOptions()
	opts.MaxIterations = 5

	r, err := Optimize("GCTGCT", counts, weights, opts)
	assert.NoError(t, err)
	assert.Equal(t, "AA", r.Translation)
	assert.Len(t, r.Sequence, 6)
}

func TestOptimizeRejectsMissingWeight(t *testing.T) {
	counts := map[OrganismID]CodonCounts{
		1: sampleCounts(t, 10, 20, 30, 40),
	}
	_, err := Optimize("GCT", counts, SpeciesWeights{2: 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestOptimizeNoOrganisms(t *testing.T) {
	_, err := Optimize("A", map[OrganismID]CodonCounts{}, SpeciesWeights{}, DefaultOptions())
	assert.Error(t, err)
}
