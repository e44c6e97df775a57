package specs

import (
	"encoding/json"
	"strconv"
)

// FlatMapFromJSON reads a stored specifications column. Anything that is not
// a JSON object yields nil. String values are kept, numbers and booleans are
// stringified, and nested values are dropped.
func FlatMapFromJSON(raw []byte) FlatMap {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil
	}
	out := make(FlatMap, len(obj))
	for k, v := range obj {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		}
	}
	return out
}

// DecodeJSON is Decode over a raw stored column.
func DecodeJSON(raw []byte) []Section {
	return Decode(FlatMapFromJSON(raw))
}

// MarshalFlatMap renders m as a JSON object, writing {} for a nil map.
func MarshalFlatMap(m FlatMap) ([]byte, error) {
	if m == nil {
		m = FlatMap{}
	}
	return json.Marshal(map[string]string(m))
}
