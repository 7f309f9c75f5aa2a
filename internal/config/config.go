// =============================================================================
// ACH Decoder - Configuration Module
// =============================================================================
//
// This module loads the YAML configuration used by the 'process' command.
// One file (config.yaml by default) drives a whole directory run: where to
// find ACH files, which export format to write, how to name the output, and
// which field transformations to apply before export.
//
// EXAMPLE:
//   input_dir: ./input
//   output_dir: ./output
//   input_pattern: "*.ach"
//   output_format: json
//   output_name_format: "{original}_{uuid}.{format}"
//   max_concurrency: 4
//   transformation_rules:
//     - field: amount
//       actions:
//         - type: trim_left_zeros
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/ACH-decoder/internal/export"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the settings for a directory run.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for ACH files. Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the exported files, summary and error logs.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after a successful decode.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every exported file.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// InputPattern is the glob used to pick files inside InputDir.
	// Default: "*.ach"
	InputPattern string `yaml:"input_pattern"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an extra zap output path. Empty logs to stderr only.
	LogFile string `yaml:"log_file"`

	// LogLevel is a zap level name such as "debug", "info", "warn" or
	// "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat is one of json, csv, xml, yaml, xlsx. Default: "json"
	OutputFormat string `yaml:"output_format"`

	// OutputNameFormat names the exported files.
	// Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYYMMDD)
	//   {original}  - input file name without extension
	//   {format}    - output format extension
	// Default: "{original}_{uuid}.{format}"
	OutputNameFormat string `yaml:"output_name_format"`

	// IndentOutput pretty-prints JSON output. Default: false
	IndentOutput bool `yaml:"indent_output"`

	// TrimValues strips fixed-width padding from every value on export.
	// Default: false
	TrimValues bool `yaml:"trim_values"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency bounds the number of files decoded at once. Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps the run going after a file fails. Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveOnSuccess moves decoded inputs to InputArchiveDir. Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// ArchiveTimestampSubdirs files archived inputs and outputs under
	// YYYY/MM/DD subdirectories of the archive directories. Default: false
	ArchiveTimestampSubdirs bool `yaml:"archive_timestamp_subdirs"`

	// =========================================================================
	// TRANSFORMATION RULES
	// =========================================================================

	// TransformationRules post-process decoded values before export. A rule
	// applies to every record that carries the named field.
	TransformationRules []TransformationRule `yaml:"transformation_rules"`
}

// =============================================================================
// TRANSFORMATION RULE STRUCTURE
// =============================================================================

// TransformationRule names a field and the actions applied to it in order.
type TransformationRule struct {
	Field   string                 `yaml:"field"`
	Actions []TransformationAction `yaml:"actions"`
}

// TransformationAction is a single value transformation.
type TransformationAction struct {
	// Type is one of TransformationTypes():
	//   - "trim"            : remove surrounding whitespace
	//   - "trim_left_zeros" : remove leading zeros (keeps a single "0")
	//   - "uppercase"       : convert to uppercase
	//   - "lowercase"       : convert to lowercase
	//   - "prepend_string"  : prefix Value
	//   - "append_string"   : suffix Value
	//   - "lookup"          : replace via LookupTable, unchanged on a miss
	Type string `yaml:"type"`

	// Value is the parameter for prepend_string and append_string.
	Value string `yaml:"value,omitempty"`

	// LookupTable maps input values to output values for "lookup".
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// ContinuesOnError reports the effective ContinueOnError setting.
func (c *MainConfig) ContinuesOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ArchivesOnSuccess reports the effective ArchiveOnSuccess setting.
func (c *MainConfig) ArchivesOnSuccess() bool {
	return c.ArchiveOnSuccess == nil || *c.ArchiveOnSuccess
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig reads, defaults and validates the configuration file.
// Directories are created later by the pipeline's file manager.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates
// values. It does not touch the file system.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ApplyDefaults sets default values for any unset option.
func ApplyDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.ach"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "json"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{uuid}.{format}"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
}

// transformationTypes lists the action types the converter implements.
var transformationTypes = []string{
	"trim",
	"trim_left_zeros",
	"uppercase",
	"lowercase",
	"prepend_string",
	"append_string",
	"lookup",
}

// TransformationTypes returns every supported action type.
func TransformationTypes() []string {
	return slices.Clone(transformationTypes)
}

// IsTransformationType reports whether name is a supported action type.
func IsTransformationType(name string) bool {
	return slices.Contains(transformationTypes, name)
}

// validateMainConfig checks option values. The output format is stored in
// its canonical lowercase form.
func validateMainConfig(config *MainConfig) error {
	format, err := export.ParseFormat(config.OutputFormat)
	if err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	config.OutputFormat = string(format)

	if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("unsupported log_level %q", config.LogLevel)
	}

	for i, rule := range config.TransformationRules {
		if rule.Field == "" {
			return fmt.Errorf("transformation_rules[%d]: field is required", i)
		}
		for _, action := range rule.Actions {
			if !IsTransformationType(action.Type) {
				return fmt.Errorf("transformation_rules[%d]: unknown action type %q", i, action.Type)
			}
		}
	}
	return nil
}
