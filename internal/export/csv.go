// =============================================================================
// ACH Decoder - CSV Export
// =============================================================================
//
// The CSV export flattens the tree into stacked sections separated by empty
// rows. The last row is the file control values, never a blank row. Each section starts with its own header row:
//
//   file header fields
//   <file header values>
//
//   batch header fields              (repeated per batch)
//   <batch header values>
//
//   entry fields + addenda columns
//   <one row per entry>
//
//   batch control fields
//   <batch control values>
//
//   file control fields
//   <file control values>
//
// ADDENDA COLUMNS:
//   When no entry in a batch has more than one addenda, the columns are named
//   a_<field>. Otherwise every addenda field gets one column per position:
//   a_<field>_<i> for i in 0..max-1, grouped by field.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

func writeCSV(w io.Writer, file *ach.File) error {
	var sections [][][]string

	if file.FileHeader != nil {
		sections = append(sections, recordSection(*file.FileHeader))
	}
	for _, batch := range file.Batches {
		sections = append(sections,
			recordSection(batch.BatchHeader),
			entrySection(batch),
			recordSection(batch.BatchControl),
		)
	}
	if file.FileControl != nil {
		sections = append(sections, recordSection(*file.FileControl))
	}

	cw := csv.NewWriter(w)
	for i, section := range sections {
		// Sections are separated, not terminated, by a blank row as wide as
		// the section above it.
		if i > 0 {
			prev := sections[i-1]
			if err := writeRows(cw, make([]string, len(prev[0]))); err != nil {
				return err
			}
		}
		if err := writeRows(cw, section...); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// recordSection returns a header row and the record's values.
func recordSection(rec ach.Record) [][]string {
	fields := rec.Fields()
	header := make([]string, len(fields))
	row := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
		row[i] = f.Value
	}
	return [][]string{header, row}
}

// entrySection returns a header row and one row per entry with its addenda
// spread over prefixed columns.
func entrySection(batch ach.Batch) [][]string {
	entryHeader := ach.EntryDetail.Layout().Names()

	maxAddenda := 0
	var addendaFields []string
	seen := make(map[string]bool)
	for _, entry := range batch.Entries {
		if len(entry.Addenda) > maxAddenda {
			maxAddenda = len(entry.Addenda)
		}
		for _, a := range entry.Addenda {
			for _, f := range a.Fields() {
				if !seen[f.Name] {
					seen[f.Name] = true
					addendaFields = append(addendaFields, f.Name)
				}
			}
		}
	}

	header := append([]string{}, entryHeader...)
	if maxAddenda <= 1 {
		for _, name := range addendaFields {
			header = append(header, addendaColumn(name, -1))
		}
	} else {
		for _, name := range addendaFields {
			for i := 0; i < maxAddenda; i++ {
				header = append(header, addendaColumn(name, i))
			}
		}
	}

	column := make(map[string]int, len(header))
	for i, name := range header {
		column[name] = i
	}

	rows := [][]string{header}
	for _, entry := range batch.Entries {
		row := make([]string, len(header))
		for _, f := range entry.EntryDetail.Fields() {
			row[column[f.Name]] = f.Value
		}
		for i, a := range entry.Addenda {
			idx := i
			if maxAddenda <= 1 {
				idx = -1
			}
			for _, f := range a.Fields() {
				row[column[addendaColumn(f.Name, idx)]] = f.Value
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// addendaColumn names an addenda column; a negative index omits the suffix.
func addendaColumn(name string, index int) string {
	if index < 0 {
		return "a_" + name
	}
	return fmt.Sprintf("a_%s_%d", name, index)
}

func writeRows(cw *csv.Writer, rows ...[]string) error {
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}
