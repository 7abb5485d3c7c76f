package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses args for cmd the way the commander does and executes it.
func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func useTempDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := *dbPath
	*dbPath = filepath.Join(dir, "portfolio.db")
	*raw = true
	t.Cleanup(func() { *dbPath = old })
	return dir
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := useTempDB(t)

	in := filepath.Join(dir, "ops.csv")
	require.NoError(t, os.WriteFile(in, []byte("ticker,type,qty,date,mep,amount\nAAPL,BUY,10,2024-01-02,1000,10000\n"), 0o600))

	assert.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{}, "-collection", "operations", in))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &holdingsCmd{}, "-c", "usd"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &flowsCmd{}, "-g", "month"))

	out := filepath.Join(dir, "export.csv")
	require.Equal(t, subcommands.ExitSuccess, run(t, &exportCmd{}, "-collection", "operations", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), ",AAPL,BUY,10,2024-01-02,1000,10000")
}

func TestBackupRestore(t *testing.T) {
	dir := useTempDB(t)

	in := filepath.Join(dir, "assets.csv")
	require.NoError(t, os.WriteFile(in, []byte("name,value\nHouse,5000\n"), 0o600))
	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{}, "-collection", "assets", in))

	archive := filepath.Join(dir, "backup.zip")
	require.Equal(t, subcommands.ExitSuccess, run(t, &exportCmd{}, "-o", archive))

	assert.Equal(t, subcommands.ExitUsageError, run(t, &clearCmd{}))
	require.Equal(t, subcommands.ExitSuccess, run(t, &clearCmd{}, "-yes"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &exportCmd{}, "-o", filepath.Join(dir, "empty.zip")))

	require.Equal(t, subcommands.ExitSuccess, run(t, &restoreCmd{}, archive))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &netWorthCmd{}))
}

func TestUsageErrors(t *testing.T) {
	useTempDB(t)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{}, "-collection", "funds", "x.csv"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{}, "-collection", "assets"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &holdingsCmd{}, "-c", "eur"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &restoreCmd{}))
}

func TestSealedBackup(t *testing.T) {
	dir := useTempDB(t)
	assert.Equal(t, subcommands.ExitSuccess, run(t, &keygenCmd{}))

	key, err := interchange.GenerateKey()
	require.NoError(t, err)
	t.Setenv("BACKUP_KEY", key)

	in := filepath.Join(dir, "symbols.csv")
	require.NoError(t, os.WriteFile(in, []byte("ticker,ratio\nAAPL,60\n"), 0o600))
	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{}, "-collection", "symbols", in))

	backups := filepath.Join(dir, "backups")
	require.NoError(t, os.Mkdir(backups, 0o700))
	require.Equal(t, subcommands.ExitSuccess, run(t, &backupCmd{}, "-dir", backups))

	sealed, err := filepath.Glob(filepath.Join(backups, "*.zip.fernet"))
	require.NoError(t, err)
	require.Len(t, sealed, 1)

	t.Setenv("BACKUP_KEY", "")
	assert.Equal(t, subcommands.ExitFailure, run(t, &restoreCmd{}, sealed[0]))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &restoreCmd{}, "-key", key, sealed[0]))
}
