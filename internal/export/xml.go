// =============================================================================
// ACH Decoder - XML Export
// =============================================================================
//
// XML STRUCTURE:
//
//   <achFile>
//     <fileHeader>
//       <record_type_code>1</record_type_code>
//       ...
//     </fileHeader>
//     <batch n="1">
//       <batchHeader>...</batchHeader>
//       <entry n="1">
//         <entryDetail>...</entryDetail>
//         <addenda n="1" type="regular">...</addenda>
//       </entry>
//       <batchControl>...</batchControl>
//     </batch>
//     <fileControl>...</fileControl>
//   </achFile>
//
// Entry numbering restarts in every batch; addenda numbering restarts in
// every entry. Values keep their padding unless Options.Trim is set.
//
// =============================================================================

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

// element is a generic XML element with either text or children.
type element struct {
	name     string
	attrs    [][2]string
	value    string
	children []element
}

func writeXML(w io.Writer, file *ach.File, opts Options) error {
	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	indent := ""
	if opts.Indent {
		indent = "  "
	}
	writeElement(&buffer, buildDocument(file), indent, 0)

	if _, err := w.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// =============================================================================
// DOCUMENT BUILDING
// =============================================================================

func buildDocument(file *ach.File) element {
	root := element{name: "achFile"}

	if file.FileHeader != nil {
		root.children = append(root.children, recordElement("fileHeader", nil, *file.FileHeader))
	}

	for i, batch := range file.Batches {
		b := element{name: "batch", attrs: [][2]string{{"n", strconv.Itoa(i + 1)}}}
		b.children = append(b.children, recordElement("batchHeader", nil, batch.BatchHeader))

		for j, entry := range batch.Entries {
			e := element{name: "entry", attrs: [][2]string{{"n", strconv.Itoa(j + 1)}}}
			e.children = append(e.children, recordElement("entryDetail", nil, entry.EntryDetail))
			for k, addenda := range entry.Addenda {
				attrs := [][2]string{
					{"n", strconv.Itoa(k + 1)},
					{"type", addendaKind(addenda)},
				}
				e.children = append(e.children, recordElement("addenda", attrs, addenda))
			}
			b.children = append(b.children, e)
		}

		b.children = append(b.children, recordElement("batchControl", nil, batch.BatchControl))
		root.children = append(root.children, b)
	}

	if file.FileControl != nil {
		root.children = append(root.children, recordElement("fileControl", nil, *file.FileControl))
	}

	return root
}

// recordElement wraps every field of rec in its own child element.
func recordElement(name string, attrs [][2]string, rec ach.Record) element {
	el := element{name: name, attrs: attrs}
	for _, f := range rec.Fields() {
		el.children = append(el.children, element{name: f.Name, value: f.Value})
	}
	return el
}

// addendaKind maps an addenda layout to its short variant name.
func addendaKind(rec ach.Record) string {
	switch rec.Layout() {
	case ach.ReturnAddenda.Layout():
		return ach.ReturnAddenda.String()
	case ach.NotificationOfChangeAddenda.Layout():
		return ach.NotificationOfChangeAddenda.String()
	default:
		return ach.RegularAddenda.String()
	}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// writeElement writes an element and its children. An empty indent writes
// everything on one line.
func writeElement(buffer *bytes.Buffer, el element, indent string, level int) {
	prefix := strings.Repeat(indent, level)
	newline := ""
	if indent != "" {
		newline = "\n"
	}

	buffer.WriteString(prefix)
	buffer.WriteString("<" + el.name)
	for _, attr := range el.attrs {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr[0], escapeXML(attr[1])))
	}

	if len(el.children) == 0 {
		if el.value == "" {
			buffer.WriteString("/>" + newline)
			return
		}
		buffer.WriteString(">")
		buffer.WriteString(escapeXML(el.value))
		buffer.WriteString("</" + el.name + ">" + newline)
		return
	}

	buffer.WriteString(">" + newline)
	for _, child := range el.children {
		writeElement(buffer, child, indent, level+1)
	}
	buffer.WriteString(prefix + "</" + el.name + ">" + newline)
}

// escapeXML escapes text for element content and attribute values.
func escapeXML(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors; strings.Builder never returns one.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
