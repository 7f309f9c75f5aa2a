// =============================================================================
// ACH Decoder - XLSX Export
// =============================================================================
//
// WORKBOOK LAYOUT:
//   File     - one row per file-level record: record, then its fields
//   Batches  - one row per batch: batch #, header fields, control_* fields
//   Entries  - one row per entry: batch #, entry #, entry detail fields
//   Addenda  - one row per addenda: batch #, entry #, addenda #, type, fields
//
// The first row of every sheet is a bold header. Every value is written as a
// string so leading zeros are preserved.
//
// =============================================================================

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

// Sheet names.
const (
	SheetFile    = "File"
	SheetBatches = "Batches"
	SheetEntries = "Entries"
	SheetAddenda = "Addenda"
)

type sheet struct {
	name   string
	header []string
	rows   [][]string
}

func writeXLSX(w io.Writer, file *ach.File) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := buildSheets(file)

	if err := f.SetSheetName("Sheet1", sheets[0].name); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, s := range sheets {
		if err := fillSheet(f, s, style); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// fillSheet writes the header and rows of s and sizes its columns.
func fillSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := setRow(f, s.name, 1, s.header); err != nil {
		return err
	}
	if len(s.header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header of %s: %w", s.name, err)
		}
	}

	widths := make([]int, len(s.header))
	for i, h := range s.header {
		widths[i] = len(h)
	}
	for r, row := range s.rows {
		if err := setRow(f, s.name, r+2, row); err != nil {
			return err
		}
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		w := float64(width + 2)
		if w < 10 {
			w = 10
		}
		if w > 80 {
			w = 80
		}
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return fmt.Errorf("failed to size column %s of %s: %w", col, s.name, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheetName string, rowNum int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheetName, err)
	}
	return nil
}

// =============================================================================
// SHEET CONTENT
// =============================================================================

func buildSheets(file *ach.File) []sheet {
	return []sheet{
		fileSheet(file),
		batchSheet(file),
		entrySheet(file),
		addendaSheet(file),
	}
}

func fileSheet(file *ach.File) sheet {
	s := sheet{name: SheetFile, header: []string{"record", "field", "value"}}
	for _, rec := range []*ach.Record{file.FileHeader, file.FileControl} {
		if rec == nil {
			continue
		}
		for _, f := range rec.Fields() {
			s.rows = append(s.rows, []string{rec.Kind(), f.Name, f.Value})
		}
	}
	return s
}

func batchSheet(file *ach.File) sheet {
	header := []string{"batch"}
	header = append(header, ach.BatchHeader.Layout().Names()...)
	for _, name := range ach.BatchControl.Layout().Names() {
		header = append(header, "control_"+name)
	}

	s := sheet{name: SheetBatches, header: header}
	for i, batch := range file.Batches {
		row := []string{fmt.Sprint(i + 1)}
		row = append(row, values(batch.BatchHeader)...)
		row = append(row, values(batch.BatchControl)...)
		s.rows = append(s.rows, row)
	}
	return s
}

func entrySheet(file *ach.File) sheet {
	header := append([]string{"batch", "entry"}, ach.EntryDetail.Layout().Names()...)

	s := sheet{name: SheetEntries, header: header}
	for i, batch := range file.Batches {
		for j, entry := range batch.Entries {
			row := []string{fmt.Sprint(i + 1), fmt.Sprint(j + 1)}
			row = append(row, values(entry.EntryDetail)...)
			s.rows = append(s.rows, row)
		}
	}
	return s
}

// addendaSheet uses the union of addenda field names in first-seen order.
func addendaSheet(file *ach.File) sheet {
	header := []string{"batch", "entry", "addenda", "type"}
	column := make(map[string]int)

	type located struct {
		batch, entry, addenda int
		rec                   ach.Record
	}
	var all []located

	for i, batch := range file.Batches {
		for j, entry := range batch.Entries {
			for k, a := range entry.Addenda {
				for _, f := range a.Fields() {
					if _, ok := column[f.Name]; !ok {
						column[f.Name] = len(header)
						header = append(header, f.Name)
					}
				}
				all = append(all, located{i + 1, j + 1, k + 1, a})
			}
		}
	}

	s := sheet{name: SheetAddenda, header: header}
	for _, l := range all {
		row := make([]string, len(header))
		row[0] = fmt.Sprint(l.batch)
		row[1] = fmt.Sprint(l.entry)
		row[2] = fmt.Sprint(l.addenda)
		row[3] = addendaKind(l.rec)
		for _, f := range l.rec.Fields() {
			row[column[f.Name]] = f.Value
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func values(rec ach.Record) []string {
	fields := rec.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}
