package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func contextWithDBFlag(t *testing.T, value string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("db", value, "")
	return cli.NewContext(&cli.App{}, set, nil)
}

func TestDatabasePathPrefersExplicitFlag(t *testing.T) {
	ctx := contextWithDBFlag(t, "explicit.db")

	path, err := databasePath(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "explicit.db", path)
}

func TestDatabasePathFallsBackToEnv(t *testing.T) {
	t.Setenv("CODON_DB_PATH", "/tmp/from-env.db")
	ctx := contextWithDBFlag(t, "")

	path, err := databasePath(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", path)
}

func TestDatabasePathFallsBackToWorkingDirectory(t *testing.T) {
	t.Setenv("CODON_DB_PATH", "")

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "codon.db")
	assert.NoError(t, os.WriteFile(dbPath, []byte{}, 0o644))

	cwd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })

	ctx := contextWithDBFlag(t, "")

	path, err := databasePath(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "codon.db", path)
}
