package legacydb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CoerceInt narrows a raw column value to an int. Numeric types are truncated,
// text is parsed as base-10, everything else (including nil and unparsable
// text) reports absent. Absence is a data fact here, never an error.
func CoerceInt(raw any) (int, bool) {
	v, ok := CoerceLong(raw)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// CoerceLong narrows a raw column value to an int64 under the same policy as
// CoerceInt.
func CoerceLong(raw any) (int64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case json.Number:
		return parseLong(v.String())
	case string:
		return parseLong(v)
	default:
		return 0, false
	}
}

// CoerceString renders a raw column value as text, reporting absent for nil.
// Non-string scalars keep their decimal rendering because legacy schemas store
// codes interchangeably as numbers and text.
func CoerceString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

func parseLong(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
