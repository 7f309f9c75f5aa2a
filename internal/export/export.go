// =============================================================================
// ACH Decoder - Export Module
// =============================================================================
//
// This module turns a decoded *ach.File into one of the supported output
// formats. Exporters only read the tree; they never reach back into the
// decoder.
//
// FORMATS:
//   json - nested object, keys in layout order
//   csv  - flattened sections, one row per entry with addenda columns
//   xml  - <achFile> document mirroring the tree
//   yaml - nested mapping, keys in layout order
//   xlsx - workbook with File, Batches, Entries and Addenda sheets
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

// Format is an output format name.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	XML  Format = "xml"
	YAML Format = "yaml"
	XLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{JSON, CSV, XML, YAML, XLSX}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %q", name)
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Binary reports whether the format is unsuitable for a terminal.
func (f Format) Binary() bool {
	return f == XLSX
}

// Options tunes the exporters.
type Options struct {
	// Indent pretty-prints JSON and XML.
	Indent bool

	// Trim strips surrounding whitespace from every value.
	Trim bool
}

// Write exports file to w in the requested format. Values that are not valid
// UTF-8 are read as ISO-8859-1 before encoding.
func Write(w io.Writer, file *ach.File, format Format, opts Options) error {
	file = file.MapValues(func(_, v string) string {
		v = ToUTF8(v)
		if opts.Trim {
			v = strings.TrimSpace(v)
		}
		return v
	})

	switch format {
	case JSON:
		return writeJSON(w, file, opts)
	case CSV:
		return writeCSV(w, file)
	case XML:
		return writeXML(w, file, opts)
	case YAML:
		return writeYAML(w, file)
	case XLSX:
		return writeXLSX(w, file)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}
