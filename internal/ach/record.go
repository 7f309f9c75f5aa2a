// =============================================================================
// ACH Decoder - Records and the Decoded Tree
// =============================================================================
//
// A Record is the raw text of every field of one line, kept in layout order.
// Values are never trimmed or converted: leading zeros, signs and blank
// padding survive exactly as they appear in the file.
//
// TREE:
//   File
//   ├── FileHeader   (*Record, nil when absent)
//   ├── Batches      ([]Batch)
//   │   ├── BatchHeader
//   │   ├── Entries  ([]Entry)
//   │   │   ├── EntryDetail
//   │   │   └── Addenda ([]Record)
//   │   └── BatchControl
//   └── FileControl  (*Record, nil when absent)
//
// =============================================================================

package ach

import (
	"bytes"
	"encoding/json"
)

// =============================================================================
// RECORD
// =============================================================================

// FieldValue is one extracted field.
type FieldValue struct {
	Name  string
	Value string
}

// Record holds the extracted fields of one line in layout order.
type Record struct {
	layout *Layout
	fields []FieldValue
}

// Extract slices every field of layout out of line. Fields running past the
// end of a short line come back truncated or empty. A nil layout yields a
// zero Record.
func Extract(line string, layout *Layout) Record {
	if layout == nil {
		return Record{}
	}
	fields := make([]FieldValue, len(layout.fields))
	for i, f := range layout.fields {
		fields[i] = FieldValue{Name: f.Name, Value: slice(line, f.Offset, f.Length)}
	}
	return Record{layout: layout, fields: fields}
}

// slice returns line[offset:offset+length] clamped to the line bounds.
func slice(line string, offset, length int) string {
	if offset >= len(line) {
		return ""
	}
	end := offset + length
	if end > len(line) {
		end = len(line)
	}
	return line[offset:end]
}

// Layout returns the table the record was decoded with.
func (r Record) Layout() *Layout {
	return r.layout
}

// Kind returns the layout name, or "" for a zero Record.
func (r Record) Kind() string {
	if r.layout == nil {
		return ""
	}
	return r.layout.name
}

// Get returns the value of the named field and whether it exists.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the named field or "" when the record has no such field.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Fields returns a copy of the extracted fields in layout order.
func (r Record) Fields() []FieldValue {
	out := make([]FieldValue, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Map returns the fields as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value
	}
	return m
}

// MapValues returns a copy of the record with fn applied to every value.
func (r Record) MapValues(fn func(name, value string) string) Record {
	fields := make([]FieldValue, len(r.fields))
	for i, f := range r.fields {
		fields[i] = FieldValue{Name: f.Name, Value: fn(f.Name, f.Value)}
	}
	return Record{layout: r.layout, fields: fields}
}

// MarshalJSON encodes the record as an object whose keys keep layout order.
// HTML characters are left unescaped.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(f.Name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(f.Value); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =============================================================================
// TREE
// =============================================================================

// Entry is one entry detail line and the addenda that follow it.
type Entry struct {
	EntryDetail Record   `json:"entry_detail"`
	Addenda     []Record `json:"addenda"`
}

// Batch is a batch header/control pair and the entries between them.
type Batch struct {
	BatchHeader  Record  `json:"batch_header"`
	BatchControl Record  `json:"batch_control"`
	Entries      []Entry `json:"entries"`
}

// File is the decoded ACH file.
type File struct {
	FileHeader  *Record `json:"file_header,omitempty"`
	FileControl *Record `json:"file_control,omitempty"`
	Batches     []Batch `json:"batches"`
}

// Stats summarises the size of a decoded file.
type Stats struct {
	Batches        int
	Entries        int
	Addenda        int
	HasFileHeader  bool
	HasFileControl bool
}

// Stats counts batches, entries and addenda.
func (f *File) Stats() Stats {
	s := Stats{
		Batches:        len(f.Batches),
		HasFileHeader:  f.FileHeader != nil,
		HasFileControl: f.FileControl != nil,
	}
	for _, b := range f.Batches {
		s.Entries += len(b.Entries)
		for _, e := range b.Entries {
			s.Addenda += len(e.Addenda)
		}
	}
	return s
}

// MapValues returns a deep copy of the tree with fn applied to every value.
// The receiver is left untouched.
func (f *File) MapValues(fn func(name, value string) string) *File {
	out := &File{Batches: make([]Batch, len(f.Batches))}
	if f.FileHeader != nil {
		r := f.FileHeader.MapValues(fn)
		out.FileHeader = &r
	}
	if f.FileControl != nil {
		r := f.FileControl.MapValues(fn)
		out.FileControl = &r
	}
	for i, b := range f.Batches {
		nb := Batch{
			BatchHeader:  b.BatchHeader.MapValues(fn),
			BatchControl: b.BatchControl.MapValues(fn),
			Entries:      make([]Entry, len(b.Entries)),
		}
		for j, e := range b.Entries {
			ne := Entry{
				EntryDetail: e.EntryDetail.MapValues(fn),
				Addenda:     make([]Record, len(e.Addenda)),
			}
			for k, a := range e.Addenda {
				ne.Addenda[k] = a.MapValues(fn)
			}
			nb.Entries[j] = ne
		}
		out.Batches[i] = nb
	}
	return out
}
