// Package attrs reads values out of slog-style key/value slices.
package attrs

// Extract returns the value stored under key when it has type T. The slice
// is formatted as [key1, value1, key2, value2, ...]; a trailing key without a
// value is ignored.
func Extract[T any](attrs []any, key string) (T, bool) {
	var zero T
	for i := 0; i+1 < len(attrs); i += 2 {
		if k, ok := attrs[i].(string); !ok || k != key {
			continue
		}
		v, ok := attrs[i+1].(T)
		return v, ok
	}
	return zero, false
}

// ExtractString is Extract for string values, returning "" when absent.
func ExtractString(attrs []any, key string) string {
	v, _ := Extract[string](attrs, key)
	return v
}
