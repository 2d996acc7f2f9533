package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nleroy917/multimizer-go/store"
	"github.com/nleroy917/multimizer-go/synthesis/codon"
)

// optimizeCommand reads the query sequence (the positional argument, or
// stdin if none was given, matching multimizer-cli's optional QUERY
// argument), pulls usage counts for every --host from the database, and
// prints the optimized sequence and its per-host RCA as JSON.
func optimizeCommand(c *cli.Context) error {
	query, err := queryFrom(c)
	if err != nil {
		return err
	}

	hostIDs := c.Int64Slice("host")
	if len(hostIDs) == 0 {
		return fmt.Errorf("codonopt: at least one --host is required")
	}

	db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	counts := make(map[codon.OrganismID]codon.CodonCounts, len(hostIDs))
	orgIDs := make([]codon.OrganismID, 0, len(hostIDs))
	for _, h := range hostIDs {
		id := codon.OrganismID(h)
		orgIDs = append(orgIDs, id)
		hostCounts, err := db.GetCounts(c.Context, id)
		if err != nil {
			return err
		}
		counts[id] = hostCounts
	}

	weights, err := weightsFrom(c, orgIDs)
	if err != nil {
		return err
	}

	opts := codon.DefaultOptions()
	opts.MaxIterations = c.Int("max-iterations")
	opts.Seed = c.Int64("seed")
	opts.ProhibitedPreferenceThreshold = c.Float64("threshold")
	opts.MinError = c.Float64("min-error")

	result, err := codon.Optimize(query, counts, weights, opts)
	if err != nil {
		return err
	}

	if c.Bool("verbose") {
		fmt.Fprintf(os.Stderr, "converged after %d iterations with error %.6f\n", result.Iterations, result.Error)
	}

	return json.NewEncoder(os.Stdout).Encode(result)
}

// pullCommand fetches and prints the organism metadata and usage counts
// for a single organism ID, matching multimizer-cli's Pull command.
func pullCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("codonopt: pull requires exactly one ORGANISM_ID argument")
	}

	var id int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &id); err != nil {
		return fmt.Errorf("codonopt: invalid ORGANISM_ID %q: %w", c.Args().First(), err)
	}

	db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	orgID := codon.OrganismID(id)
	org, err := db.GetOrganism(c.Context, orgID)
	if err != nil {
		return err
	}
	counts, err := db.GetCounts(c.Context, orgID)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(struct {
		Organism *store.Organism   `json:"organism"`
		Counts   codon.CodonCounts `json:"counts"`
	}{org, counts})
}

// queryFrom returns the QUERY positional argument, or reads a single line
// from stdin if none was given.
func queryFrom(c *cli.Context) (string, error) {
	if c.Args().Len() > 0 {
		return c.Args().First(), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("codonopt: reading query from stdin: %w", err)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// weightsFrom pairs --weight values with --host values in order, falling
// back to equal weighting if --weight was not given at all.
func weightsFrom(c *cli.Context, orgIDs []codon.OrganismID) (codon.SpeciesWeights, error) {
	raw := c.Float64Slice("weight")
	if len(raw) == 0 {
		return codon.EqualWeights(orgIDs), nil
	}
	if len(raw) != len(orgIDs) {
		return nil, fmt.Errorf("codonopt: %d --weight values given for %d --host values", len(raw), len(orgIDs))
	}

	targets := make(map[codon.OrganismID]float64, len(orgIDs))
	for i, id := range orgIDs {
		targets[id] = raw[i]
	}
	return codon.WeightsFromExpression(orgIDs, targets)
}
