package codon

import (
	"errors"
	"fmt"
)

// Sentinel errors for the zero-argument members of the closed error
// taxonomy. Parameterized members (InvalidSequenceError,
// UnavailableResidueError) are typed structs below, following the same
// convention poly uses for its invalidAminoAcidError.
var (
	ErrInvalidCodon        = errors.New("codon: invalid codon")
	ErrInvalidAminoAcid    = errors.New("codon: invalid amino acid")
	ErrNotDivisibleByThree = errors.New("codon: sequence length is not divisible by three")
	ErrInvalidThreshold    = errors.New("codon: prohibited preference threshold must be in (0, 1)")
	ErrInvalidWeights      = errors.New("codon: species weights must be strictly positive and cover every organism")
	errNoOrganisms         = errors.New("codon: no organisms supplied")
)

// InvalidSequenceError is returned by DetectSequenceType when a character
// belongs to neither the nucleotide nor the amino-acid alphabet.
type InvalidSequenceError struct {
	Position int
	Char     rune
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("codon: invalid sequence: unrecognized character %q at position %d", e.Char, e.Position)
}

// UnavailableResidueError is returned when a protein asks for an amino acid
// that has no surviving codon after refinement and averaging.
type UnavailableResidueError struct {
	AminoAcid byte
}

func (e *UnavailableResidueError) Error() string {
	return fmt.Sprintf("codon: amino acid %q has no available codons", e.AminoAcid)
}
