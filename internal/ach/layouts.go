// =============================================================================
// ACH Decoder - Record Layouts
// =============================================================================
//
// This file declares the fixed-width field tables for every NACHA record type
// the decoder understands. Offsets are 0-based byte positions into a
// 94-character line.
//
// LAYOUTS:
//   fileHeaderLayout     - record type '1'
//   batchHeaderLayout    - record type '5'
//   entryDetailLayout    - record type '6'
//   regularAddendaLayout - record type '7', addenda type "05" (and fallback)
//   nocAddendaLayout     - record type '7', addenda type "98"
//   returnAddendaLayout  - record type '7', addenda type "99"
//   batchControlLayout   - record type '8'
//   fileControlLayout    - record type '9'
//
// The tables are unexported. Callers reach them through RecordType.Layout
// and AddendaType.Layout, and a *Layout only exposes copies of its fields.
//
// =============================================================================

package ach

// =============================================================================
// FIELD AND LAYOUT TYPES
// =============================================================================

// Field is a named (offset, length) slice rule applied to a fixed-width line.
type Field struct {
	Name   string
	Offset int
	Length int
}

// End returns the exclusive end offset of the field.
func (f Field) End() int {
	return f.Offset + f.Length
}

// Layout is an ordered field table for one record type.
type Layout struct {
	name   string
	fields []Field
}

// Name identifies the layout in exports (e.g. "batch_header").
func (l *Layout) Name() string {
	return l.name
}

// Fields returns a copy of the field table in line order.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Len returns the number of fields.
func (l *Layout) Len() int {
	return len(l.fields)
}

// Width returns the largest field end offset in the layout.
func (l *Layout) Width() int {
	width := 0
	for _, f := range l.fields {
		if f.End() > width {
			width = f.End()
		}
	}
	return width
}

// Names returns the field names in table order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}
	return names
}

// =============================================================================
// FILE-LEVEL LAYOUTS
// =============================================================================

// fileHeaderLayout describes the '1' record.
var fileHeaderLayout = Layout{
	name: "file_header",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "priority_code", Offset: 1, Length: 2},
		{Name: "immediate_dest", Offset: 3, Length: 10},
		{Name: "immediate_org", Offset: 13, Length: 10},
		{Name: "file_crt_date", Offset: 23, Length: 6},
		{Name: "file_crt_time", Offset: 29, Length: 4},
		{Name: "file_id_mod", Offset: 33, Length: 1},
		{Name: "record_size", Offset: 34, Length: 3},
		{Name: "blk_factor", Offset: 37, Length: 2},
		{Name: "format_code", Offset: 39, Length: 1},
		{Name: "im_dest_name", Offset: 40, Length: 23},
		{Name: "im_orgn_name", Offset: 63, Length: 23},
		{Name: "reference_code", Offset: 86, Length: 8},
	},
}

// fileControlLayout describes the '9' record.
var fileControlLayout = Layout{
	name: "file_control",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "batch_count", Offset: 1, Length: 6},
		{Name: "block_count", Offset: 7, Length: 6},
		{Name: "entadd_count", Offset: 13, Length: 8},
		{Name: "entry_hash", Offset: 21, Length: 10},
		{Name: "debit_amount", Offset: 31, Length: 12},
		{Name: "credit_amount", Offset: 43, Length: 12},
		{Name: "reserved", Offset: 55, Length: 39},
	},
}

// =============================================================================
// BATCH-LEVEL LAYOUTS
// =============================================================================

// batchHeaderLayout describes the '5' record.
var batchHeaderLayout = Layout{
	name: "batch_header",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "serv_cls_code", Offset: 1, Length: 3},
		{Name: "company_name", Offset: 4, Length: 16},
		{Name: "cmpy_dis_data", Offset: 20, Length: 20},
		{Name: "company_id", Offset: 40, Length: 10},
		{Name: "std_ent_cls_code", Offset: 50, Length: 3},
		{Name: "entry_desc", Offset: 53, Length: 10},
		{Name: "desc_date", Offset: 63, Length: 6},
		{Name: "eff_ent_date", Offset: 69, Length: 6},
		{Name: "settlement_date", Offset: 75, Length: 3},
		{Name: "orig_stat_code", Offset: 78, Length: 1},
		{Name: "orig_dfi_id", Offset: 79, Length: 8},
		{Name: "batch_id", Offset: 87, Length: 7},
	},
}

// batchControlLayout describes the '8' record.
//
// Positions 88-94 carry the batch number in NACHA terms. Older tables label
// them orig_dfi_id a second time; here they are exposed as batch_id to match
// the header layout.
var batchControlLayout = Layout{
	name: "batch_control",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "serv_cls_code", Offset: 1, Length: 3},
		{Name: "entadd_count", Offset: 4, Length: 6},
		{Name: "entry_hash", Offset: 10, Length: 10},
		{Name: "debit_amount", Offset: 20, Length: 12},
		{Name: "credit_amount", Offset: 32, Length: 12},
		{Name: "company_id", Offset: 44, Length: 10},
		{Name: "mesg_auth_code", Offset: 54, Length: 19},
		{Name: "reserved", Offset: 73, Length: 6},
		{Name: "orig_dfi_id", Offset: 79, Length: 8},
		{Name: "batch_id", Offset: 87, Length: 7},
	},
}

// =============================================================================
// ENTRY AND ADDENDA LAYOUTS
// =============================================================================

// entryDetailLayout describes the '6' record.
var entryDetailLayout = Layout{
	name: "entry_detail",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "transaction_code", Offset: 1, Length: 2},
		{Name: "recv_dfi_id", Offset: 3, Length: 8},
		{Name: "check_digit", Offset: 11, Length: 1},
		{Name: "dfi_acnt_num", Offset: 12, Length: 17},
		{Name: "amount", Offset: 29, Length: 10},
		{Name: "ind_id", Offset: 39, Length: 15},
		{Name: "ind_name", Offset: 54, Length: 22},
		{Name: "disc_data", Offset: 76, Length: 2},
		{Name: "add_rec_ind", Offset: 78, Length: 1},
		{Name: "trace_num", Offset: 79, Length: 15},
	},
}

// regularAddendaLayout describes the "05" addenda.
var regularAddendaLayout = Layout{
	name: "regular_addenda",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "addenda_type_code", Offset: 1, Length: 2},
		{Name: "pmt_rel_info", Offset: 3, Length: 80},
		{Name: "add_seq_num", Offset: 83, Length: 4},
		{Name: "ent_det_seq_num", Offset: 87, Length: 7},
	},
}

// nocAddendaLayout describes the "98" notification-of-change addenda.
var nocAddendaLayout = Layout{
	name: "notification_of_change_addenda",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "addenda_type_code", Offset: 1, Length: 2},
		{Name: "change_code", Offset: 3, Length: 3},
		{Name: "orig_trace_num", Offset: 6, Length: 15},
		{Name: "reserved", Offset: 21, Length: 6},
		{Name: "orig_rdfi_id", Offset: 27, Length: 8},
		{Name: "corrected_data", Offset: 35, Length: 29},
		{Name: "reserved_2", Offset: 64, Length: 15},
		{Name: "trace_num", Offset: 79, Length: 15},
	},
}

// returnAddendaLayout describes the "99" return addenda.
var returnAddendaLayout = Layout{
	name: "return_addenda",
	fields: []Field{
		{Name: "record_type_code", Offset: 0, Length: 1},
		{Name: "addenda_type_code", Offset: 1, Length: 2},
		{Name: "return_reason_code", Offset: 3, Length: 3},
		{Name: "orig_trace_num", Offset: 6, Length: 15},
		{Name: "date_of_death", Offset: 21, Length: 6},
		{Name: "orig_rdfi_id", Offset: 27, Length: 8},
		{Name: "addenda_info", Offset: 35, Length: 44},
		{Name: "trace_num", Offset: 79, Length: 15},
	},
}
