package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nleroy917/multimizer-go/store"
)

// openStore resolves the database path and opens it. The search order
// mirrors multimizer-cli's get_database_file_path: an explicit --db flag,
// then $CODON_DB_PATH, then ./codon.db in the working directory.
func openStore(c *cli.Context) (*store.Store, error) {
	path, err := databasePath(c)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

func databasePath(c *cli.Context) (string, error) {
	if p := c.String("db"); p != "" {
		return p, nil
	}
	if p := os.Getenv("CODON_DB_PATH"); p != "" {
		return p, nil
	}
	if _, err := os.Stat("codon.db"); err == nil {
		return "codon.db", nil
	}
	return "", fmt.Errorf("codonopt: could not find the database file; set --db or $CODON_DB_PATH")
}
