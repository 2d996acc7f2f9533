package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nleroy917/multimizer-go/synthesis/codon"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedOrganism(t *testing.T, s *Store, id codon.OrganismID) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO organisms
		(org_id, division, assembly, taxid, species, organelle, translation_table, num_cds, num_codons, gc_perc, gc1_perc, gc2_perc, gc3_perc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(id), "bct", "GCF_000000.1", 83333, "Escherichia coli", "genomic", 11, 4000, 1200000, 50.1, 45.2, 52.3, 53.0)
	assert.NoError(t, err)

	_, err = s.db.Exec(`INSERT INTO codon_usage (org_id, codon, count) VALUES (?, ?, ?)`, int64(id), "GCT", 100)
	assert.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO codon_usage (org_id, codon, count) VALUES (?, ?, ?)`, int64(id), "GCC", 300)
	assert.NoError(t, err)
}

func TestGetOrganism(t *testing.T) {
	s := openTestStore(t)
	seedOrganism(t, s, 1)

	org, err := s.GetOrganism(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Escherichia coli", org.Species)
	assert.Equal(t, int64(83333), org.TaxID)
}

func TestGetOrganismNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetOrganism(context.Background(), 99)
	assert.Error(t, err)
}

func TestGetCounts(t *testing.T) {
	s := openTestStore(t)
	seedOrganism(t, s, 1)

	counts, err := s.GetCounts(context.Background(), 1)
	assert.NoError(t, err)

	gct, _ := codon.ParseCodon("GCT")
	gcc, _ := codon.ParseCodon("GCC")
	gca, _ := codon.ParseCodon("GCA")
	assert.Equal(t, uint64(100), counts[gct])
	assert.Equal(t, uint64(300), counts[gcc])
	assert.Equal(t, uint64(0), counts[gca], "codons with no usage row must still be zero-filled")
	assert.Len(t, counts, codon.NumCodons)
}

func TestGetCountsNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCounts(context.Background(), 99)
	assert.Error(t, err)
}
