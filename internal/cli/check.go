package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/kinship/internal/config"
	"github.com/mvp-joe/kinship/internal/lineage"
	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

var (
	checkDB        string
	checkAncestors string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Summarise the database and check the pedigree for cycles",
	Long: `Check counts the records in the database and walks every parent and
child link. A person listed as their own ancestor is reported as a cycle.
With --ancestors, the ancestors of one person are listed nearest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := rootDir()
		if err != nil {
			return err
		}
		path := checkDB
		if path == "" {
			path = cfg.DatabasePath(root)
		}
		return executeCheck(cmd.Context(), cfg, path, checkAncestors, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkDB, "db", "", "database path (default .kinship/tree.db)")
	checkCmd.Flags().StringVar(&checkAncestors, "ancestors", "", "list the ancestors of the person with this id (e.g. I0004)")
}

func executeCheck(ctx context.Context, cfg *config.Config, path, ancestorsOf string, out io.Writer) error {
	store, err := storage.OpenSQLite(path, storage.WithCacheSize(cfg.Store.CacheSize))
	if err != nil {
		return err
	}
	defer store.Close()

	tx, err := store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fmt.Fprintf(out, "Database: %s\n", path)
	if last, err := tx.Metadata("last_import"); err == nil && last != "" {
		at, _ := tx.Metadata("last_import_at")
		fmt.Fprintf(out, "Last import: %s at %s\n", last, at)
	}
	fmt.Fprintln(out)
	for _, kind := range model.Kinds {
		n, err := tx.Count(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-11s %s\n", kind, formatNumber(n))
	}

	res, err := lineage.Check(tx)
	if err != nil {
		return fmt.Errorf("failed to check lineage: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Pedigree: %s links, %d generations, %s trees\n",
		formatNumber(res.Links), res.Generations, formatNumber(res.Trees))
	if len(res.Cycles) == 0 {
		fmt.Fprintln(out, "✓ No cycles")
	} else {
		fmt.Fprintf(out, "✗ %d cycles:\n", len(res.Cycles))
		for _, c := range res.Cycles {
			fmt.Fprintf(out, "  %s\n", c)
		}
	}

	if ancestorsOf == "" {
		return nil
	}
	return printAncestors(tx, ancestorsOf, out)
}

func printAncestors(tx storage.Tx, id string, out io.Writer) error {
	person, err := tx.FindByID(model.KindPerson, id)
	if err != nil {
		return fmt.Errorf("person %s: %w", id, err)
	}
	pedigree, _, err := lineage.Build(tx)
	if err != nil {
		return fmt.Errorf("failed to build pedigree: %w", err)
	}
	ancestors, err := pedigree.Ancestors(person.GetHandle())
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	if len(ancestors) == 0 {
		fmt.Fprintf(out, "No known ancestors of %s\n", id)
		return nil
	}
	fmt.Fprintf(out, "Ancestors of %s: %s\n", id, strings.Join(ancestors, ", "))
	return nil
}
