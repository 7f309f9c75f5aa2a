// =============================================================================
// ACH Decoder - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (achdecoder)
//   ├── decodeCmd  (achdecoder decode <file>)
//   ├── inspectCmd (achdecoder inspect <file>)
//   ├── processCmd (achdecoder process)
//   └── versionCmd (achdecoder version)
//
// The root command owns the global flags and the zap logger. Logs go to
// stderr so decoded output on stdout stays clean.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// logger is built in PersistentPreRunE and synced in PersistentPostRun.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "achdecoder",
	Short: "ACH Decoder - Decode NACHA fixed-width ACH files",
	Long: `ACH Decoder turns NACHA ACH files (94-character fixed-width records) into
a structured file / batch / entry / addenda tree and exports it as JSON, CSV,
XML, YAML or XLSX.

Example Usage:
  achdecoder decode payroll.ach                  # JSON on stdout
  achdecoder decode payroll.ach --format xlsx -o payroll.xlsx
  achdecoder inspect payroll.ach                 # batch and entry summary
  achdecoder process --config ./config.yaml      # decode a whole input directory`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		var err error
		logger, err = buildLogger(level, "")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// LOGGING
// =============================================================================

// buildLogger returns a production zap logger writing to stderr and, when
// logFile is set, to that file as well.
func buildLogger(level zapcore.Level, logFile string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	if logFile != "" {
		config.OutputPaths = append(config.OutputPaths, logFile)
	}
	return config.Build()
}

// parseLevel maps a configured log level to zap. --verbose always wins.
func parseLevel(name string) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
