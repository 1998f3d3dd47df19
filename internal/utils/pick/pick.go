// Package pick selects a subset of keys from maps and query strings.
package pick

import "net/url"

// Pick returns a new map holding only the listed keys that exist in m.
func Pick[K comparable, V any](m map[K]V, keys ...K) map[K]V {
	out := make(map[K]V, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Query picks the first value of each listed key present in values.
func Query(values url.Values, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if vs, ok := values[k]; ok && len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
