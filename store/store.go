// Package store is the SQLite-backed usage store adapter: it turns rows
// of a codon_usage / organisms schema into the synthesis/codon package's
// CodonCounts and Organism values.
//
// It is grounded on two sources: the connection and pragma wiring follows
// nishad-srake's internal/database package, and the schema and query
// shape follow the original Rust implementation's
// multimizer-core/src/db/interfaces.rs, including the fix for a bug that
// source calls out in its own comment -- get_codon_usage_for_organism
// there reads SELECT * columns back by raw positional index, which the
// source admits "doesn't match up with the model". Here every column is
// read by name instead, so a schema change can never silently misalign
// counts with the wrong codon.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nleroy917/multimizer-go/synthesis/codon"
)

// Organism is per-host metadata accompanying a set of codon usage counts.
type Organism struct {
	ID               codon.OrganismID
	Division         string
	Assembly         string
	TaxID            int64
	Species          string
	Organelle        string
	TranslationTable int
	NumCDS           int64
	NumCodons        int64
	GCPercent        float64
	GC1Percent       float64
	GC2Percent       float64
	GC3Percent       float64
}

// Store is a read-only handle onto a codon usage database.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and creates the organisms and
// codon_usage tables if they do not already exist.
// It configures the connection the way nishad-srake's database package
// does: WAL journaling, a bounded busy timeout, and normal sync, since
// this store is read-mostly and never needs to survive a hard crash
// mid-write the way a primary datastore would.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS organisms (
		org_id INTEGER PRIMARY KEY,
		division TEXT,
		assembly TEXT,
		taxid INTEGER,
		species TEXT,
		organelle TEXT,
		translation_table INTEGER,
		num_cds INTEGER,
		num_codons INTEGER,
		gc_perc REAL,
		gc1_perc REAL,
		gc2_perc REAL,
		gc3_perc REAL
	);

	CREATE TABLE IF NOT EXISTS codon_usage (
		org_id INTEGER NOT NULL REFERENCES organisms(org_id),
		codon TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (org_id, codon)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}
	return nil
}

// GetOrganism fetches the metadata row for id.
func (s *Store) GetOrganism(ctx context.Context, id codon.OrganismID) (*Organism, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT org_id, division, assembly, taxid, species, organelle,
		       translation_table, num_cds, num_codons, gc_perc, gc1_perc, gc2_perc, gc3_perc
		FROM organisms WHERE org_id = ?`, int64(id))

	var org Organism
	var orgID int64
	err := row.Scan(&orgID, &org.Division, &org.Assembly, &org.TaxID, &org.Species, &org.Organelle,
		&org.TranslationTable, &org.NumCDS, &org.NumCodons, &org.GCPercent, &org.GC1Percent, &org.GC2Percent, &org.GC3Percent)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: no organism found at org_id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get organism %d: %w", id, err)
	}
	org.ID = codon.OrganismID(orgID)
	return &org, nil
}

// GetCounts fetches the raw per-codon usage counts for id. Every one of
// the 64 codons is zero-filled before rows are applied, so the returned
// CodonCounts itself satisfies the "every codon present" invariant
// CountsToFractions and RefineTables depend on, instead of leaving an
// absent row to the caller's map zero-value.
func (s *Store) GetCounts(ctx context.Context, id codon.OrganismID) (codon.CodonCounts, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT codon, count FROM codon_usage WHERE org_id = ?`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("store: get counts for organism %d: %w", id, err)
	}
	defer rows.Close()

	counts := make(codon.CodonCounts, codon.NumCodons)
	for ord := 0; ord < codon.NumCodons; ord++ {
		counts[codon.Codon(ord)] = 0
	}

	found := false
	for rows.Next() {
		var spelling string
		var count uint64
		if err := rows.Scan(&spelling, &count); err != nil {
			return nil, fmt.Errorf("store: scan codon usage row: %w", err)
		}
		c, err := codon.ParseCodon(spelling)
		if err != nil {
			return nil, fmt.Errorf("store: organism %d: %w", id, err)
		}
		counts[c] = count
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate codon usage rows for organism %d: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("store: no codon usage found for organism %d", id)
	}

	return counts, nil
}
