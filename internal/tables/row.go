package tables

import (
	"sort"
	"strings"
)

// Row is a single table row keyed by the original header text (trimmed).
// Only populated cells carry keys, so a row's key set is always a subset of
// its table's headers.
type Row map[string]string

// Field performs the fuzzy semantic key lookup used by every row mapper:
// candidates are matched as case-insensitive substrings against the row's
// keys. Candidates are tried in order; keys are scanned alphabetically so
// repeated calls are deterministic regardless of map iteration order.
func (r Row) Field(candidates ...string) (string, bool) {
	if len(r) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, candidate := range candidates {
		needle := strings.ToLower(strings.TrimSpace(candidate))
		if needle == "" {
			continue
		}
		for _, key := range keys {
			if strings.Contains(strings.ToLower(key), needle) {
				return r[key], true
			}
		}
	}
	return "", false
}

// Clone returns a shallow copy so callers can hold rows past the lifetime of
// the collected table without sharing mutation.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}
