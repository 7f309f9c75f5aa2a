package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
)

// writeJSON encodes the tree. Record.MarshalJSON keeps field order.
func writeJSON(w io.Writer, file *ach.File, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
