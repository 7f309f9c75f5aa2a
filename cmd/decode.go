// =============================================================================
// ACH Decoder - Decode Command
// =============================================================================
//
// COMMAND USAGE:
//   achdecoder decode <file|-> [flags]
//
// FLAGS:
//   --format, -f : json (default), csv, xml, yaml, xlsx
//   --output, -o : write to a file instead of stdout
//   --trim       : strip fixed-width padding from every value
//   --indent     : pretty-print JSON and XML
//
// "-" reads the ACH file from stdin. xlsx needs --output.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/export"
)

var (
	decodeFormat string
	decodeOutput string
	decodeTrim   bool
	decodeIndent bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a single ACH file",
	Long: `Decode a single ACH file and write the structured tree in the chosen format.

A structural error (a batch control or addenda record out of place) aborts
the decode and reports the 0-based line index of the offending record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "json", "Output format: json, csv, xml, yaml, xlsx")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Output file (default stdout)")
	decodeCmd.Flags().BoolVar(&decodeTrim, "trim", false, "Trim padding from every value")
	decodeCmd.Flags().BoolVar(&decodeIndent, "indent", false, "Pretty-print JSON and XML output")
}

func runDecode(cmd *cobra.Command, path string) error {
	format, err := export.ParseFormat(decodeFormat)
	if err != nil {
		return err
	}
	if format.Binary() && decodeOutput == "" {
		return fmt.Errorf("%s output requires --output", format)
	}

	file, err := decodePath(cmd, path)
	if err != nil {
		return err
	}

	stats := file.Stats()
	logger.Debug("decoded file",
		zap.String("file", path),
		zap.Int("batches", stats.Batches),
		zap.Int("entries", stats.Entries),
		zap.Int("addenda", stats.Addenda),
	)

	var w io.Writer = cmd.OutOrStdout()
	if decodeOutput != "" {
		out, err := os.Create(decodeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
		w = out
	}

	opts := export.Options{Indent: decodeIndent, Trim: decodeTrim}
	if err := export.Write(w, file, format, opts); err != nil {
		return err
	}

	if decodeOutput != "" {
		logger.Info("wrote output", zap.String("output", decodeOutput), zap.String("format", string(format)))
	}
	return nil
}

// decodePath decodes the named file, or stdin for "-".
func decodePath(cmd *cobra.Command, path string) (*ach.File, error) {
	if path == "-" {
		file, err := ach.DecodeReader(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to decode stdin: %w", err)
		}
		return file, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	file, err := ach.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return file, nil
}
