package recad

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The legacy session stored "informacoesusuario" as whatever the minting
// screen had at hand: a bare number, a numeric string, or a map with some
// spelling of the code key. ExtractUserCode narrows that closed set with an
// ordered probe list; the first probe that recognizes the shape wins and no
// reflection is involved.

type userCodeProbe func(raw any) (int, bool)

var userCodeProbes = []userCodeProbe{probeNumber, probeText, probeMap}

// mapCodeKeys are tried in order inside a map payload.
var mapCodeKeys = []string{"codigo", "codigoUsuario", "id"}

// ExtractUserCode returns the numeric user code carried by a session payload,
// or nil when no known shape yields one.
func ExtractUserCode(raw any) *int {
	if raw == nil {
		return nil
	}
	for _, probe := range userCodeProbes {
		if code, ok := probe(raw); ok {
			return &code
		}
	}
	return nil
}

func probeNumber(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func probeText(raw any) (int, bool) {
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func probeMap(raw any) (int, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, key := range mapCodeKeys {
		v, exists := m[key]
		if !exists {
			continue
		}
		if code, ok := probeNumber(v); ok {
			return code, true
		}
		if code, ok := probeText(v); ok {
			return code, true
		}
	}
	return 0, false
}
