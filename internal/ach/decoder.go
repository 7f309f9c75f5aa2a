// =============================================================================
// ACH Decoder - Decoder
// =============================================================================
//
// Decode rebuilds the File tree from the flat line sequence of an ACH file.
//
// DECODING PASSES:
//   1. File records:   first '1' line and first '9' line.
//   2. Batch bounds:   pair every '5' line with the '8' line that closes it.
//   3. Batch bodies:   walk the lines strictly between each pair, opening an
//                      entry on '6' and attaching '7' lines to the open entry.
//
// LENIENCY:
//   Missing file header/control, empty batches and entries without addenda
//   are not errors. Blank lines, unknown record types and short lines are
//   tolerated. Orphaned control and addenda lines abort the decode with a
//   *DecodeError.
//
// =============================================================================

package ach

import (
	"fmt"
	"io"
	"strings"
)

// boundary holds the line indexes of one batch header and its control.
type boundary struct {
	header  int
	control int
}

// Decode parses the text of an ACH file.
func Decode(text string) (*File, error) {
	lines := splitLines(text)

	file := &File{}
	scanFileRecords(lines, file)

	bounds, err := locateBatches(lines)
	if err != nil {
		return nil, err
	}

	file.Batches = make([]Batch, 0, len(bounds))
	for _, b := range bounds {
		batch, err := assembleBatch(lines, b)
		if err != nil {
			return nil, err
		}
		file.Batches = append(file.Batches, batch)
	}

	return file, nil
}

// DecodeBytes parses an ACH file held in memory.
func DecodeBytes(data []byte) (*File, error) {
	return Decode(string(data))
}

// DecodeReader buffers r completely and decodes it.
func DecodeReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ACH input: %w", err)
	}
	return DecodeBytes(data)
}

// splitLines splits on '\n' and drops one trailing '\r' from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// =============================================================================
// PASS 1: FILE HEADER AND CONTROL
// =============================================================================

func scanFileRecords(lines []string, file *File) {
	for _, line := range lines {
		kind := Classify(line)
		switch kind {
		case FileHeader:
			if file.FileHeader == nil {
				r := Extract(line, kind.Layout())
				file.FileHeader = &r
			}
		case FileControl:
			if file.FileControl == nil {
				r := Extract(line, kind.Layout())
				file.FileControl = &r
			}
		}
		if file.FileHeader != nil && file.FileControl != nil {
			return
		}
	}
}

// =============================================================================
// PASS 2: BATCH BOUNDARIES
// =============================================================================

// locateBatches pairs batch headers and controls by order of appearance. A
// control always closes the most recently opened batch.
func locateBatches(lines []string) ([]boundary, error) {
	var bounds []boundary
	open := false

	for i, line := range lines {
		switch Classify(line) {
		case BatchHeader:
			if open {
				return nil, &DecodeError{
					Line:       bounds[len(bounds)-1].header,
					RecordType: BatchHeader,
					Err:        ErrBatchWithoutControl,
				}
			}
			bounds = append(bounds, boundary{header: i, control: -1})
			open = true

		case BatchControl:
			if !open {
				return nil, &DecodeError{Line: i, RecordType: BatchControl, Err: ErrBatchControlWithoutHeader}
			}
			bounds[len(bounds)-1].control = i
			open = false
		}
	}

	if open {
		return nil, &DecodeError{
			Line:       bounds[len(bounds)-1].header,
			RecordType: BatchHeader,
			Err:        ErrBatchWithoutControl,
		}
	}

	return bounds, nil
}

// =============================================================================
// PASS 3: BATCH BODIES
// =============================================================================

// assembleBatch decodes the header, control and interior lines of one batch.
func assembleBatch(lines []string, b boundary) (Batch, error) {
	batch := Batch{
		BatchHeader:  Extract(lines[b.header], BatchHeader.Layout()),
		BatchControl: Extract(lines[b.control], BatchControl.Layout()),
		Entries:      []Entry{},
	}

	// current is the index of the entry that addenda attach to.
	current := -1

	for i := b.header + 1; i < b.control; i++ {
		line := lines[i]
		kind := Classify(line)
		switch kind {
		case EntryDetail:
			batch.Entries = append(batch.Entries, Entry{
				EntryDetail: Extract(line, kind.Layout()),
				Addenda:     []Record{},
			})
			current = len(batch.Entries) - 1

		case Addenda:
			if current < 0 {
				return Batch{}, &DecodeError{Line: i, RecordType: Addenda, Err: ErrAddendaWithoutEntry}
			}
			entry := &batch.Entries[current]
			entry.Addenda = append(entry.Addenda, Extract(line, ClassifyAddenda(line).Layout()))
		}
	}

	return batch, nil
}
