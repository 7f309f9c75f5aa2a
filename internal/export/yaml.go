package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

// writeYAML encodes the tree as ordered mapping nodes. Values are always
// double-quoted so padding and leading zeros survive a round trip.
func writeYAML(w io.Writer, file *ach.File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(fileNode(file)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

func fileNode(file *ach.File) *yaml.Node {
	root := mappingNode()
	if file.FileHeader != nil {
		addPair(root, "file_header", recordNode(*file.FileHeader))
	}
	if file.FileControl != nil {
		addPair(root, "file_control", recordNode(*file.FileControl))
	}

	batches := sequenceNode()
	for _, batch := range file.Batches {
		b := mappingNode()
		addPair(b, "batch_header", recordNode(batch.BatchHeader))
		addPair(b, "batch_control", recordNode(batch.BatchControl))

		entries := sequenceNode()
		for _, entry := range batch.Entries {
			e := mappingNode()
			addPair(e, "entry_detail", recordNode(entry.EntryDetail))
			addenda := sequenceNode()
			for _, a := range entry.Addenda {
				addenda.Content = append(addenda.Content, recordNode(a))
			}
			addPair(e, "addenda", addenda)
			entries.Content = append(entries.Content, e)
		}
		addPair(b, "entries", entries)
		batches.Content = append(batches.Content, b)
	}
	addPair(root, "batches", batches)

	return root
}

func recordNode(rec ach.Record) *yaml.Node {
	node := mappingNode()
	for _, f := range rec.Fields() {
		addPair(node, f.Name, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.DoubleQuotedStyle,
			Value: f.Value,
		})
	}
	return node
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
