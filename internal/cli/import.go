package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/kinship/internal/config"
	"github.com/mvp-joe/kinship/internal/importer"
	"github.com/mvp-joe/kinship/internal/storage"
)

// importFlags are the command line overrides of the import command.
type importFlags struct {
	db         string
	dryRun     bool
	quiet      bool
	reportPath string
	charset    string
	placeForm  string
	ignore     []string
}

var importOpts importFlags

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a GEDCOM file into the database",
	Long: `Import reads a GEDCOM 5.5 file into the genealogy database.

The import runs in a single transaction: a file that is not GEDCOM, a file
cut short before its TRLR record, or Ctrl+C leaves the database unchanged.
Lines that cannot be imported are reported and attached as notes to the
record they belong to.

Examples:
  # Import into .kinship/tree.db
  kinship import family.ged

  # Check a file without writing anything
  kinship import --dry-run family.ged

  # Write the import report to a file
  kinship import --report import.txt family.ged

  # Skip vendor tags silently
  kinship import --ignore '_*' family.ged
`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	f := importCmd.Flags()
	f.StringVar(&importOpts.db, "db", "", "database path (default .kinship/tree.db)")
	f.BoolVarP(&importOpts.dryRun, "dry-run", "n", false, "import into memory and discard the result")
	f.BoolVarP(&importOpts.quiet, "quiet", "q", false, "disable progress bars and the summary")
	f.StringVar(&importOpts.reportPath, "report", "", "write the full import report to this file ('-' for stdout)")
	f.StringVar(&importOpts.charset, "charset", "", "charset for files without BOM or HEAD.CHAR")
	f.StringVar(&importOpts.placeForm, "place-form", "", "place hierarchy when the header has none")
	f.StringSliceVar(&importOpts.ignore, "ignore", nil, "tag patterns to skip without a warning")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInterrupted! Cancelling import...")
			cancel()
		case <-ctx.Done():
		}
	}()

	root, err := rootDir()
	if err != nil {
		return err
	}
	return executeImport(ctx, cfg, root, args[0], importOpts, cmd.OutOrStdout())
}

// executeImport runs an import with flags applied over cfg.
func executeImport(ctx context.Context, cfg *config.Config, root, path string, flags importFlags, out io.Writer) error {
	if flags.charset != "" {
		cfg.Import.DefaultCharset = flags.charset
	}
	if flags.placeForm != "" {
		cfg.Import.PlaceForm = flags.placeForm
	}
	cfg.Import.IgnoreTags = append(cfg.Import.IgnoreTags, flags.ignore...)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	store, err := openStore(cfg, root, flags)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := cfg.ImportOptions(filepath.Base(path))
	opts.Progress = NewCLIProgressReporter(out, flags.quiet)
	opts.Logger = slog.Default()

	report, err := importer.Import(ctx, f, store, opts)
	if err != nil {
		var fe *importer.FatalError
		switch {
		case errors.Is(err, context.Canceled):
			return fmt.Errorf("import cancelled, database unchanged")
		case errors.As(err, &fe):
			return fmt.Errorf("import of %s failed at line %d, database unchanged: %w", path, fe.Line, fe.Err)
		default:
			return fmt.Errorf("import of %s failed: %w", path, err)
		}
	}

	if flags.dryRun && !flags.quiet {
		fmt.Fprintln(out, "Dry run: nothing was written")
	}
	return writeReport(report, flags.reportPath, out)
}

func openStore(cfg *config.Config, root string, flags importFlags) (storage.Store, error) {
	if flags.dryRun {
		return storage.NewMemStore(), nil
	}
	path := flags.db
	if path == "" {
		path = cfg.DatabasePath(root)
	}
	store, err := storage.OpenSQLite(path, storage.WithCacheSize(cfg.Store.CacheSize))
	if errors.Is(err, storage.ErrLocked) {
		return nil, fmt.Errorf("%s is in use by another kinship process", path)
	}
	return store, err
}

func writeReport(report *importer.Report, path string, out io.Writer) error {
	switch path {
	case "":
		return nil
	case "-":
		return report.WriteText(out)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
