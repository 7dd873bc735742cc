package hammer

import "strings"

// Record is one decoded CLI response: field names mapped to a scalar
// string, a list of strings (repeated keys), or a nested string map
// (entity-specific decoders such as organization parameters). Callers
// treat a Record as read-only.
type Record map[string]any

// Field returns the scalar value for key, or "" when the key is absent or
// not a scalar.
func (r Record) Field(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// List returns the values for key. A scalar is returned as a one-element
// list; an absent key yields nil.
func (r Record) List(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Map returns the nested mapping for key, or nil when the key is absent or
// was not decoded into a map.
func (r Record) Map(key string) map[string]string {
	if v, ok := r[key].(map[string]string); ok {
		return v
	}
	return nil
}

// NormalizeKey lower-cases a field name and collapses internal whitespace
// runs to single hyphens, so "Compute Resources" and "compute-resources"
// address the same field.
func NormalizeKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(key))), "-")
}
