package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/gedcom"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "Show the encoding and size of a GEDCOM file",
	Long: `Scan runs the quick pre-pass of an import without touching the
database: it reports the detected and declared character sets, the
decoder an import would use, and the number of lines, people and families.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeScan(args[0], charset.FromDeclared(cfg.Import.DefaultCharset), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func executeScan(path string, fallback charset.Charset, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	stage, err := gedcom.ScanStageOne(f, gedcom.WithScanLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", path, err)
	}

	declared := stage.Declared
	if declared == "" {
		declared = "none"
	}
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Detected:    %s\n", charsetName(stage.Detected))
	fmt.Fprintf(out, "Declared:    %s\n", declared)
	fmt.Fprintf(out, "Decoding as: %s\n", stage.Charset(fallback))
	fmt.Fprintf(out, "Lines:       %s (%s malformed)\n", formatNumber(stage.Lines), formatNumber(stage.Invalid))
	fmt.Fprintf(out, "People:      %s\n", formatNumber(stage.Individuals))
	fmt.Fprintf(out, "Families:    %s\n", formatNumber(stage.Families))
	return nil
}

// charsetName is shown for a charset that may be Unknown.
func charsetName(c charset.Charset) string {
	if c == charset.Unknown {
		return "not detected"
	}
	return c.String()
}
