package ach

// =============================================================================
// RECORD TYPES
// =============================================================================

// RecordType is the record kind carried in the first byte of a line.
type RecordType byte

const (
	// Ignored covers blank lines and unknown leading bytes.
	Ignored      RecordType = 0
	FileHeader   RecordType = '1'
	BatchHeader  RecordType = '5'
	EntryDetail  RecordType = '6'
	Addenda      RecordType = '7'
	BatchControl RecordType = '8'
	FileControl  RecordType = '9'
)

// String returns the snake_case name used in exports and errors.
func (t RecordType) String() string {
	switch t {
	case FileHeader:
		return "file_header"
	case BatchHeader:
		return "batch_header"
	case EntryDetail:
		return "entry_detail"
	case Addenda:
		return "addenda"
	case BatchControl:
		return "batch_control"
	case FileControl:
		return "file_control"
	default:
		return "ignored"
	}
}

// Layout returns the field table for the record type. Addenda lines need a
// second-level lookup (see ClassifyAddenda), so Addenda and Ignored return nil.
func (t RecordType) Layout() *Layout {
	switch t {
	case FileHeader:
		return &fileHeaderLayout
	case BatchHeader:
		return &batchHeaderLayout
	case EntryDetail:
		return &entryDetailLayout
	case BatchControl:
		return &batchControlLayout
	case FileControl:
		return &fileControlLayout
	default:
		return nil
	}
}

// Classify returns the record type of a line.
func Classify(line string) RecordType {
	if line == "" {
		return Ignored
	}
	switch t := RecordType(line[0]); t {
	case FileHeader, BatchHeader, EntryDetail, Addenda, BatchControl, FileControl:
		return t
	default:
		return Ignored
	}
}

// =============================================================================
// ADDENDA TYPES
// =============================================================================

// AddendaType selects one of the addenda field layouts.
type AddendaType int

const (
	RegularAddenda AddendaType = iota
	NotificationOfChangeAddenda
	ReturnAddenda
)

// Addenda type codes found at bytes 1..2 of an addenda line.
const (
	RegularAddendaCode              = "05"
	NotificationOfChangeAddendaCode = "98"
	ReturnAddendaCode               = "99"
)

// String returns the short variant name.
func (a AddendaType) String() string {
	switch a {
	case NotificationOfChangeAddenda:
		return "notification_of_change"
	case ReturnAddenda:
		return "return"
	default:
		return "regular"
	}
}

// Layout returns the field table for the addenda variant.
func (a AddendaType) Layout() *Layout {
	switch a {
	case NotificationOfChangeAddenda:
		return &nocAddendaLayout
	case ReturnAddenda:
		return &returnAddendaLayout
	default:
		return &regularAddendaLayout
	}
}

// ClassifyAddenda inspects the addenda type code of an addenda line. Unknown
// or missing codes fall back to RegularAddenda.
func ClassifyAddenda(line string) AddendaType {
	switch slice(line, 1, 2) {
	case ReturnAddendaCode:
		return ReturnAddenda
	case NotificationOfChangeAddendaCode:
		return NotificationOfChangeAddenda
	default:
		return RegularAddenda
	}
}
