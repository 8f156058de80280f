package security

import (
	"strconv"
	"strings"
)

// NormalizeSubject maps the historical encodings of the "sub" claim to a
// numeric user id:
//
//   - a JSON number is used directly,
//   - a string of digits is parsed as an integer,
//   - a string with an underscore-delimited suffix whose final segment is
//     numeric (the legacy "user_id_123" format) yields that suffix; with
//     multiple underscores only the last segment is considered,
//   - anything else is not normalizable and the caller's lookup fails
//     as not-found.
//
// The underscore heuristic is ambiguous on purpose (see its tests); it must
// not be generalized.
func NormalizeSubject(sub interface{}) (int64, bool) {
	switch v := sub.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id, true
		}
		if i := strings.LastIndex(v, "_"); i >= 0 {
			if id, err := strconv.ParseInt(v[i+1:], 10, 64); err == nil {
				return id, true
			}
		}
	}
	return 0, false
}
