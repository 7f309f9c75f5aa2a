package ach

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEndToEnd(t *testing.T) {
	input := joinLines(
		fileHeaderLine,
		batchHeaderLine,
		entryLine,
		regularAddendaLine,
		batchControlLine,
		fileControlLine,
	)

	file, err := Decode(input)
	require.NoError(t, err)

	require.NotNil(t, file.FileHeader)
	require.NotNil(t, file.FileControl)
	assert.Equal(t, "1", file.FileHeader.Value("record_type_code"))
	assert.Equal(t, "9", file.FileControl.Value("record_type_code"))

	require.Len(t, file.Batches, 1)
	batch := file.Batches[0]
	assert.Equal(t, "200", batch.BatchHeader.Value("serv_cls_code"))
	assert.Equal(t, "ACME CORP       ", batch.BatchHeader.Value("company_name"))
	assert.Equal(t, "0000001", batch.BatchControl.Value("batch_id"))

	require.Len(t, batch.Entries, 1)
	require.Len(t, batch.Entries[0].Addenda, 1)
	assert.Equal(t, "regular_addenda", batch.Entries[0].Addenda[0].Kind())
	assert.Equal(t, "0001", batch.Entries[0].Addenda[0].Value("add_seq_num"))

	assert.Equal(t, Stats{Batches: 1, Entries: 1, Addenda: 1, HasFileHeader: true, HasFileControl: true}, file.Stats())
}

func TestDecodeBatchOrderAndCount(t *testing.T) {
	input := joinLines(
		fileHeaderLine,
		batchHeaderLine,
		entryWithTrace("000000000000001"),
		entryWithTrace("000000000000002"),
		batchControlLine,
		batchHeaderLine,
		batchControlLine,
		batchHeaderLine,
		entryWithTrace("000000000000003"),
		batchControlLine,
		fileControlLine,
	)

	file, err := Decode(input)
	require.NoError(t, err)
	require.Len(t, file.Batches, strings.Count(input, "\n5"))

	var traces [][]string
	for _, b := range file.Batches {
		var bt []string
		for _, e := range b.Entries {
			bt = append(bt, e.EntryDetail.Value("trace_num"))
		}
		traces = append(traces, bt)
	}
	want := [][]string{
		{"000000000000001", "000000000000002"},
		nil,
		{"000000000000003"},
	}
	if diff := cmp.Diff(want, traces); diff != "" {
		t.Errorf("entry traces mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, file.Batches[1].Entries)
	assert.Empty(t, file.Batches[1].Entries)
}

func TestDecodeAddendaAttachment(t *testing.T) {
	input := joinLines(
		batchHeaderLine,
		entryWithTrace("000000000000001"),
		regularAddendaLine,
		entryWithTrace("000000000000002"),
		returnAddendaLine,
		nocAddendaLine,
		batchControlLine,
		batchHeaderLine,
		entryWithTrace("000000000000003"),
		batchControlLine,
	)

	file, err := Decode(input)
	require.NoError(t, err)
	require.Len(t, file.Batches, 2)

	first := file.Batches[0].Entries
	require.Len(t, first, 2)
	require.Len(t, first[0].Addenda, 1)
	require.Len(t, first[1].Addenda, 2)
	assert.Equal(t, "regular_addenda", first[0].Addenda[0].Kind())
	assert.Equal(t, "return_addenda", first[1].Addenda[0].Kind())
	assert.Equal(t, "notification_of_change_addenda", first[1].Addenda[1].Kind())

	second := file.Batches[1].Entries
	require.Len(t, second, 1)
	assert.Empty(t, second[0].Addenda)
}

func TestDecodeAddendaVariants(t *testing.T) {
	input := joinLines(batchHeaderLine, entryLine, returnAddendaLine, nocAddendaLine, "702OTHER", batchControlLine)

	file, err := Decode(input)
	require.NoError(t, err)
	addenda := file.Batches[0].Entries[0].Addenda
	require.Len(t, addenda, 3)

	ret := addenda[0]
	assert.Equal(t, []string{
		"record_type_code", "addenda_type_code", "return_reason_code", "orig_trace_num",
		"date_of_death", "orig_rdfi_id", "addenda_info", "trace_num",
	}, ret.Layout().Names())
	assert.Equal(t, "R01", ret.Value("return_reason_code"))
	assert.Equal(t, "091000010000001", ret.Value("orig_trace_num"))
	assert.Equal(t, "09100001", ret.Value("orig_rdfi_id"))

	noc := addenda[1]
	assert.Equal(t, "C01", noc.Value("change_code"))
	assert.Equal(t, padRight("1234567890123", 29), noc.Value("corrected_data"))

	other := addenda[2]
	assert.Equal(t, "regular_addenda", other.Kind())
	assert.Equal(t, "02", other.Value("addenda_type_code"))
	assert.Equal(t, "OTHER", other.Value("pmt_rel_info"))
}

func TestDecodeWithoutFileRecords(t *testing.T) {
	file, err := Decode(joinLines(batchHeaderLine, entryLine, batchControlLine))
	require.NoError(t, err)

	assert.Nil(t, file.FileHeader)
	assert.Nil(t, file.FileControl)
	require.Len(t, file.Batches, 1)

	data, err := json.Marshal(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "file_header")
	assert.NotContains(t, string(data), "file_control")
}

func TestDecodeEmptyInput(t *testing.T) {
	file, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, file.FileHeader)
	assert.NotNil(t, file.Batches)
	assert.Empty(t, file.Batches)

	data, err := json.Marshal(file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"batches":[]}`, string(data))
}

func TestDecodeToleratesNoise(t *testing.T) {
	input := strings.Join([]string{
		fileHeaderLine,
		"",
		"this line is not an ACH record",
		batchHeaderLine,
		"",
		entryLine,
		"0garbage",
		regularAddendaLine,
		batchControlLine,
		entryLine, // outside any batch
		fileControlLine,
		strings.Repeat("9", 94),
		"",
	}, "\r\n")

	file, err := Decode(input)
	require.NoError(t, err)
	require.Len(t, file.Batches, 1)
	require.Len(t, file.Batches[0].Entries, 1)
	assert.Len(t, file.Batches[0].Entries[0].Addenda, 1)
	assert.Equal(t, "000001", file.FileControl.Value("batch_count"))
	assert.Equal(t, "0000001", file.Batches[0].BatchControl.Value("batch_id"))
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		sentinel error
		line     int
		recType  RecordType
	}{
		{
			name:     "control before header",
			lines:    []string{batchControlLine, batchHeaderLine, batchControlLine},
			sentinel: ErrBatchControlWithoutHeader,
			line:     0,
			recType:  BatchControl,
		},
		{
			name:     "second control for closed batch",
			lines:    []string{fileHeaderLine, batchHeaderLine, batchControlLine, batchControlLine},
			sentinel: ErrBatchControlWithoutHeader,
			line:     3,
			recType:  BatchControl,
		},
		{
			name:     "addenda before entry",
			lines:    []string{fileHeaderLine, batchHeaderLine, regularAddendaLine, entryLine, batchControlLine},
			sentinel: ErrAddendaWithoutEntry,
			line:     2,
			recType:  Addenda,
		},
		{
			name:     "addenda does not carry over batches",
			lines:    []string{batchHeaderLine, entryLine, batchControlLine, batchHeaderLine, returnAddendaLine, batchControlLine},
			sentinel: ErrAddendaWithoutEntry,
			line:     4,
			recType:  Addenda,
		},
		{
			name:     "header while batch open",
			lines:    []string{batchHeaderLine, entryLine, batchHeaderLine, batchControlLine},
			sentinel: ErrBatchWithoutControl,
			line:     0,
			recType:  BatchHeader,
		},
		{
			name:     "batch never closed",
			lines:    []string{fileHeaderLine, batchHeaderLine, entryLine, fileControlLine},
			sentinel: ErrBatchWithoutControl,
			line:     1,
			recType:  BatchHeader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Decode(joinLines(tt.lines...))
			require.Error(t, err)
			assert.Nil(t, file)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, tt.line, decErr.Line)
			assert.Equal(t, tt.recType, decErr.RecordType)
			assert.Contains(t, err.Error(), tt.sentinel.Error())
		})
	}
}

func TestDecodeReader(t *testing.T) {
	file, err := DecodeReader(strings.NewReader(joinLines(fileHeaderLine, fileControlLine)))
	require.NoError(t, err)
	assert.Equal(t, "REF00001", file.FileHeader.Value("reference_code"))
	assert.Empty(t, file.Batches)
}

func TestFileMapValuesLeavesOriginal(t *testing.T) {
	file, err := Decode(joinLines(fileHeaderLine, batchHeaderLine, entryLine, regularAddendaLine, batchControlLine, fileControlLine))
	require.NoError(t, err)

	trimmed := file.MapValues(func(_, v string) string { return strings.TrimSpace(v) })

	assert.Equal(t, "DEST BANK", trimmed.FileHeader.Value("im_dest_name"))
	assert.Equal(t, padRight("DEST BANK", 23), file.FileHeader.Value("im_dest_name"))
	assert.Equal(t, "PAYMENT INFO", trimmed.Batches[0].Entries[0].Addenda[0].Value("pmt_rel_info"))
	assert.Equal(t, file.Stats(), trimmed.Stats())
}

func TestDecodeResolvesLayoutsByRecordType(t *testing.T) {
	input := joinLines(fileHeaderLine, batchHeaderLine, entryLine, returnAddendaLine, batchControlLine, fileControlLine)

	file, err := Decode(input)
	require.NoError(t, err)

	assert.Same(t, FileHeader.Layout(), file.FileHeader.Layout())
	assert.Same(t, FileControl.Layout(), file.FileControl.Layout())
	batch := file.Batches[0]
	assert.Same(t, BatchHeader.Layout(), batch.BatchHeader.Layout())
	assert.Same(t, BatchControl.Layout(), batch.BatchControl.Layout())
	assert.Same(t, EntryDetail.Layout(), batch.Entries[0].EntryDetail.Layout())
	assert.Same(t, ReturnAddenda.Layout(), batch.Entries[0].Addenda[0].Layout())
}
