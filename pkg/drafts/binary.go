package drafts

import (
	"encoding/base64"

	"github.com/go-drift/formidable/pkg/form"
)

// binaryKey tags a base64 encoded []byte in stored values. JSON has no
// binary type, so {"$binary": "..."} stands in for one.
const binaryKey = "$binary"

// encodeValues returns a copy of values with every []byte, at any depth,
// replaced by its tagged form.
func encodeValues(values form.Values) form.Values {
	if values == nil {
		return nil
	}
	out := make(form.Values, len(values))
	for k, v := range values {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v any) any {
	switch v := v.(type) {
	case []byte:
		return map[string]any{binaryKey: base64.StdEncoding.EncodeToString(v)}
	case form.Values:
		return map[string]any(encodeValues(v))
	case map[string]any:
		return map[string]any(encodeValues(v))
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = encodeValue(el)
		}
		return out
	}
	return v
}

// decodeValues restores tagged binaries in place.
func decodeValues(values form.Values) {
	for k, v := range values {
		values[k] = decodeValue(v)
	}
}

func decodeValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if data, ok := taggedBinary(v); ok {
			return data
		}
		decodeValues(v)
	case []any:
		for i, el := range v {
			v[i] = decodeValue(el)
		}
	}
	return v
}

func taggedBinary(m map[string]any) ([]byte, bool) {
	if len(m) != 1 {
		return nil, false
	}
	s, ok := m[binaryKey].(string)
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return data, true
}
