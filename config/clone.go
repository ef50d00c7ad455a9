package config

// deepCopyMap copies a decoded YAML mapping, recursing into nested maps and
// lists so callers of Metadata cannot reach parsed state.
func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopySlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = deepCopyValue(v)
	}
	return dst
}

// deepCopyValue copies map[string]any and []any values; scalars are
// returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		return deepCopySlice(val)
	default:
		return v
	}
}

// Metadata returns a deep copy of every entry's raw definition.
func (m Map) Metadata() map[string]map[string]any {
	out := make(map[string]map[string]any, len(m))
	for name, cfg := range m {
		out[name] = deepCopyMap(cfg.Raw)
	}
	return out
}
