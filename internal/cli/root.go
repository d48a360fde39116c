package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/kinship/internal/config"
	"github.com/mvp-joe/kinship/internal/logging"
)

var (
	verbose bool
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kinship",
	Short: "Kinship - GEDCOM genealogy importer",
	Long: `Kinship reads GEDCOM 5.5 files into a local genealogy database.

Settings are read from .kinship/config.yml (project or home directory)
and KINSHIP_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// initConfig loads the configuration and sets up logging before any
// subcommand runs.
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	logging.SetupWriter(cmd.ErrOrStderr(), loaded.Logging.Level, loaded.Logging.Format)
	cfg = loaded
	return nil
}

// rootDir is the directory the default database lives under.
func rootDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
