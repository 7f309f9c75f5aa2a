// =============================================================================
// ACH Decoder - Transformation Engine
// =============================================================================
//
// Field transformations post-process decoded values before export. They are
// configured per field name in config.yaml and apply to every record that
// carries that field (e.g. "trace_num" touches entry details and addenda).
//
// TRANSFORMATION TYPES:
//   - trim, trim_left_zeros
//   - uppercase, lowercase
//   - prepend_string, append_string
//   - lookup (table replacement)
//
// The decoded tree is never mutated; Apply works on a deep copy.
//
// =============================================================================

package converter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/config"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer applies field transformation rules to a decoded file.
type Transformer struct {
	rules map[string][]config.TransformationAction
}

// NewTransformer indexes rules by field name. Rules for the same field are
// chained in declaration order. An unknown action type is an error.
func NewTransformer(rules []config.TransformationRule) (*Transformer, error) {
	t := &Transformer{rules: make(map[string][]config.TransformationAction)}
	for i, rule := range rules {
		for _, action := range rule.Actions {
			if !IsSupportedTransformation(action.Type) {
				return nil, fmt.Errorf("rule %d (%s): unknown transformation type %q", i, rule.Field, action.Type)
			}
		}
		t.rules[rule.Field] = append(t.rules[rule.Field], rule.Actions...)
	}
	return t, nil
}

// Empty reports whether the transformer has no rules.
func (t *Transformer) Empty() bool {
	return len(t.rules) == 0
}

// Apply returns a transformed copy of file. With no rules file is returned
// unchanged.
func (t *Transformer) Apply(file *ach.File) *ach.File {
	if t.Empty() {
		return file
	}
	return file.MapValues(t.Transform)
}

// Transform runs every action configured for fieldName over value.
func (t *Transformer) Transform(fieldName, value string) string {
	for _, action := range t.rules[fieldName] {
		value = ApplyTransformation(value, action)
	}
	return value
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// ApplyTransformation applies a single action. Unsupported types leave the
// value unchanged; NewTransformer rejects them up front.
func ApplyTransformation(value string, action config.TransformationAction) string {
	switch action.Type {

	case "trim":
		return strings.TrimSpace(value)

	case "trim_left_zeros":
		// EXAMPLE:
		//   Input:  "0000010000"
		//   Output: "10000"
		trimmed := strings.TrimLeft(value, "0")
		if trimmed == "" && value != "" {
			return "0"
		}
		return trimmed

	case "uppercase":
		return strings.ToUpper(value)

	case "lowercase":
		return strings.ToLower(value)

	case "prepend_string":
		return action.Value + value

	case "append_string":
		return value + action.Value

	case "lookup":
		// Misses keep the original value.
		if replacement, ok := action.LookupTable[value]; ok {
			return replacement
		}
		return value
	}

	return value
}

// GetSupportedTransformations lists every transformation type.
func GetSupportedTransformations() []string {
	return config.TransformationTypes()
}

// IsSupportedTransformation reports whether transformType is known.
func IsSupportedTransformation(transformType string) bool {
	return config.IsTransformationType(transformType)
}
