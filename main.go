// =============================================================================
// ACH Decoder - Main Entry Point
// =============================================================================
//
// USAGE:
//   achdecoder decode <file>   - Decode one ACH file to stdout or a file
//   achdecoder inspect <file>  - Print a batch / entry summary
//   achdecoder process         - Decode every ACH file in the input directory
//   achdecoder version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/             : CLI command definitions (Cobra)
//   - internal/ach     : fixed-width record layouts and the decoder
//   - internal/export  : JSON, CSV, XML, YAML and XLSX exporters
//   - internal/config  : YAML configuration for directory runs
//   - internal/converter : per-file pipeline, transformations, worker pool
//   - pkg/utils        : file discovery, archival, run logs
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ACH-decoder/cmd"
)

func main() {
	cmd.Execute()
}
