package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
)

type exportCmd struct {
	collection string
	output     string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a collection as CSV or everything as a ZIP archive" }
func (*exportCmd) Usage() string {
	return `portfolioctl export [-collection symbols|operations|assets] [-o <file>]

  Without -collection, writes a ZIP archive of every non-empty collection.
  With -collection, writes that collection as CSV (to stdout unless -o is given).
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.collection, "collection", "", "Collection to export as CSV")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.collection == "" {
		out := c.output
		if out == "" {
			out = fmt.Sprintf("portfolio-backup-%s.zip", time.Now().Format("20060102-150405"))
		}
		err = writeFile(out, func(w io.Writer) error { return a.transfer.ExportArchive(ctx, w) })
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting archive: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		return subcommands.ExitSuccess
	}

	coll, err := request.ParseCollection(c.collection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.output == "" {
		err = a.transfer.ExportCSV(ctx, os.Stdout, coll)
	} else {
		err = writeFile(c.output, func(w io.Writer) error { return a.transfer.ExportCSV(ctx, w, coll) })
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", coll, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	collection string
	mode       string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a CSV file into a collection" }
func (*importCmd) Usage() string {
	return `portfolioctl import -collection symbols|operations|assets [-mode append|replace] <file.csv>

  Imports every row of the file or none of them. Symbols default to replace,
  the other collections to append.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.collection, "collection", "", "Target collection (required)")
	f.StringVar(&c.mode, "mode", "", "append or replace")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one CSV file")
		return subcommands.ExitUsageError
	}
	coll, err := request.ParseCollection(c.collection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	mode, err := request.ParseImportMode(c.mode, coll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	a, err := openApp(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	result, err := a.transfer.Import(ctx, file, coll, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import rejected:\n%v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d %s (%s, batch %s)\n", result.Count, result.Collection, result.Mode, result.BatchID)
	return subcommands.ExitSuccess
}

type backupCmd struct {
	dir string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "write a backup archive into the backup directory" }
func (*backupCmd) Usage() string {
	return `portfolioctl backup [-dir <directory>]

  Writes a ZIP archive of every collection, encrypted when BACKUP_KEY is set.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "Backup directory (default: BACKUP_DIR)")
}

func (c *backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sealer, err := a.sealer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	dir := c.dir
	if dir == "" {
		dir = a.cfg.Backup.Dir
	}

	path, err := service.NewBackupService(a.transfer, dir, sealer, a.log).Backup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing backup: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(path)
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	key string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace collections from a backup archive" }
func (*restoreCmd) Usage() string {
	return `portfolioctl restore [-key <fernet key>] <archive>

  Replaces every collection present in the archive, in one transaction.
  Encrypted archives need -key or BACKUP_KEY.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "Key of an encrypted archive (default: BACKUP_KEY)")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one archive")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading archive: %v\n", err)
		return subcommands.ExitFailure
	}

	a, err := openApp(ctx, c.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	result, err := a.transfer.Restore(ctx, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore rejected: %v\n", err)
		return subcommands.ExitFailure
	}
	for coll, n := range result.Counts {
		fmt.Printf("Restored %d %s\n", n, coll)
	}
	return subcommands.ExitSuccess
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every record" }
func (*clearCmd) Usage() string {
	return `portfolioctl clear -yes

  Deletes every symbol, operation and asset. Take a backup first.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm deletion")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Refusing to clear without -yes")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.transfer.Clear(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("All data cleared")
	return subcommands.ExitSuccess
}

type keygenCmd struct{}

func (*keygenCmd) Name() string     { return "keygen" }
func (*keygenCmd) Synopsis() string { return "print a new BACKUP_KEY for sealed backups" }
func (*keygenCmd) Usage() string {
	return `portfolioctl keygen

  Prints a random key suitable for BACKUP_KEY and restore -key.
`
}

func (*keygenCmd) SetFlags(*flag.FlagSet) {}

func (*keygenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := interchange.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(key)
	return subcommands.ExitSuccess
}

// writeFile creates path atomically from what write produces.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".portfolioctl-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
