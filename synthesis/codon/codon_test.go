package codon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCodonAndSpell(t *testing.T) {
	c, err := ParseCodon("atg")
	assert.NoError(t, err)
	assert.Equal(t, "ATG", c.Spell())
	assert.Equal(t, "ATG", c.String())
}

func TestParseCodonInvalid(t *testing.T) {
	_, err := ParseCodon("AT")
	assert.ErrorIs(t, err, ErrInvalidCodon)

	_, err = ParseCodon("ATX")
	assert.ErrorIs(t, err, ErrInvalidCodon)
}

func TestCodonOrdinalsAreLexicographic(t *testing.T) {
	for ord := 0; ord < NumCodons-1; ord++ {
		assert.Less(t, Codon(ord).Spell(), Codon(ord+1).Spell())
	}
}

func TestTranslateDNA(t *testing.T) {
	protein, err := TranslateDNA("ATGGCC")
	assert.NoError(t, err)
	assert.Equal(t, "MA", protein)
}

func TestTranslateDNANotDivisibleByThree(t *testing.T) {
	_, err := TranslateDNA("ATGG")
	assert.ErrorIs(t, err, ErrNotDivisibleByThree)
}

func TestTranslateDNAInvalidCodon(t *testing.T) {
	_, err := TranslateDNA("ATX")
	assert.ErrorIs(t, err, ErrInvalidCodon)
}

func TestDetectSequenceTypePrefersDNA(t *testing.T) {
	kind, err := DetectSequenceType("ACG")
	assert.NoError(t, err)
	assert.Equal(t, Dna, kind)
}

func TestDetectSequenceTypeProtein(t *testing.T) {
	kind, err := DetectSequenceType("MWYTQK")
	assert.NoError(t, err)
	assert.Equal(t, Protein, kind)
}

func TestDetectSequenceTypeInvalid(t *testing.T) {
	_, err := DetectSequenceType("MWYT1QK")
	var seqErr *InvalidSequenceError
	assert.ErrorAs(t, err, &seqErr)
	assert.Equal(t, int32('1'), seqErr.Char)
}

func TestDegeneracyGroupCoversAllCodons(t *testing.T) {
	total := 0
	for i := 0; i < len(AminoAcidAlphabet); i++ {
		total += len(DegeneracyGroup(AminoAcidAlphabet[i]))
	}
	assert.Equal(t, NumCodons, total)
}

func TestDegeneracyGroupSingleCodonResidues(t *testing.T) {
	// M and W are famously the two single-codon residues; the original
	// Rust source's hardcoded degeneracy counts dropped both.
	assert.Len(t, DegeneracyGroup('M'), 1)
	assert.Len(t, DegeneracyGroup('W'), 1)
}

func TestIsValidAminoAcid(t *testing.T) {
	assert.True(t, IsValidAminoAcid('A'))
	assert.True(t, IsValidAminoAcid('*'))
	assert.False(t, IsValidAminoAcid('B'))
}
