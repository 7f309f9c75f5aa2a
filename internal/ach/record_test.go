package ach

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allLayouts = []*Layout{
	&fileHeaderLayout,
	&fileControlLayout,
	&batchHeaderLayout,
	&batchControlLayout,
	&entryDetailLayout,
	&regularAddendaLayout,
	&nocAddendaLayout,
	&returnAddendaLayout,
}

// distinctLine builds a line where every byte differs from its neighbours so
// that an off-by-one slice would be visible.
func distinctLine(n int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[i%len(alphabet)])
	}
	return b.String()
}

func TestLayoutsAreContiguous(t *testing.T) {
	for _, layout := range allLayouts {
		t.Run(layout.Name(), func(t *testing.T) {
			next := 0
			for _, f := range layout.fields {
				assert.Equal(t, next, f.Offset, "gap or overlap before %s", f.Name)
				next = f.End()
			}
			assert.Equal(t, 94, layout.Width())
		})
	}
}

func TestLayoutFieldNamesUnique(t *testing.T) {
	for _, layout := range allLayouts {
		seen := make(map[string]bool)
		for _, name := range layout.Names() {
			assert.False(t, seen[name], "%s: duplicate field %q", layout.Name(), name)
			assert.Equal(t, strings.TrimSpace(name), name)
			seen[name] = true
		}
	}
}

func TestExtractRoundTrip(t *testing.T) {
	line := distinctLine(120)
	for _, layout := range allLayouts {
		t.Run(layout.Name(), func(t *testing.T) {
			rec := Extract(line, layout)
			require.Equal(t, layout.Len(), rec.Len())

			var joined strings.Builder
			for i, fv := range rec.Fields() {
				assert.Equal(t, layout.fields[i].Name, fv.Name)
				assert.Len(t, fv.Value, layout.fields[i].Length)
				joined.WriteString(fv.Value)
			}
			assert.Equal(t, line[:layout.Width()], joined.String())
		})
	}
}

func TestExtractShortLine(t *testing.T) {
	rec := Extract("101 0910", &fileHeaderLayout)

	assert.Equal(t, "1", rec.Value("record_type_code"))
	assert.Equal(t, "01", rec.Value("priority_code"))
	assert.Equal(t, " 0910", rec.Value("immediate_dest"))
	assert.Equal(t, "", rec.Value("immediate_org"))
	assert.Equal(t, "", rec.Value("reference_code"))
	assert.Equal(t, fileHeaderLayout.Len(), rec.Len())
}

func TestExtractKeepsPadding(t *testing.T) {
	rec := Extract(entryLine, &entryDetailLayout)

	assert.Equal(t, "0000010000", rec.Value("amount"))
	assert.Equal(t, "JOHN DOE              ", rec.Value("ind_name"))
	assert.Equal(t, "123456789        ", rec.Value("dfi_acnt_num"))
}

func TestRecordGet(t *testing.T) {
	rec := Extract(batchHeaderLine, &batchHeaderLayout)

	v, ok := rec.Get("serv_cls_code")
	assert.True(t, ok)
	assert.Equal(t, "200", v)

	_, ok = rec.Get("no_such_field")
	assert.False(t, ok)
	assert.Equal(t, "batch_header", rec.Kind())
	assert.Equal(t, "", Record{}.Kind())
}

func TestRecordMarshalJSONKeepsOrder(t *testing.T) {
	rec := Extract(fileHeaderLine, &fileHeaderLayout)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"record_type_code":"1","priority_code":"01","immediate_dest":" 091000019"`), string(data))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec.Map(), decoded)
}

func TestRecordMapValuesCopies(t *testing.T) {
	rec := Extract(entryLine, &entryDetailLayout)
	trimmed := rec.MapValues(func(_, v string) string { return strings.TrimSpace(v) })

	assert.Equal(t, "JOHN DOE", trimmed.Value("ind_name"))
	assert.Equal(t, "JOHN DOE              ", rec.Value("ind_name"))
	assert.Same(t, rec.Layout(), trimmed.Layout())
}

func TestLayoutFieldsAreCopies(t *testing.T) {
	layout := FileHeader.Layout()
	fields := layout.Fields()
	fields[0] = Field{Name: "changed", Offset: 5, Length: 50}

	assert.Equal(t, "record_type_code", layout.Fields()[0].Name)
	assert.Equal(t, "record_type_code", layout.Names()[0])

	rec := Extract(fileHeaderLine, layout)
	assert.Equal(t, "1", rec.Value("record_type_code"))
}

func TestExtractNilLayout(t *testing.T) {
	rec := Extract(fileHeaderLine, Ignored.Layout())
	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, "", rec.Kind())
}
