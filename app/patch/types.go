package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Severities is the fixed set of patch importance tags queried from the
// patch finder, in fetch order.
var Severities = []string{"important", "critical"}

// StringList decodes a JSON field that the patch finder returns either
// as an array, a bare scalar, or null. Non-string elements are
// stringified; null and absent both decode to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
	case []any:
		out := make(StringList, 0, len(v))
		for _, elem := range v {
			out = append(out, stringifyScalar(elem))
		}
		*l = out
	default:
		*l = StringList{stringifyScalar(v)}
	}

	return nil
}

// Join renders the list for display, matching the exported cell format.
func (l StringList) Join() string {
	return strings.Join(l, "; ")
}

func stringifyScalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

// ScalarString decodes a JSON string, number, or null into a plain
// string. Null and absent both become "".
type ScalarString string

func (s *ScalarString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if string(trimmed) == "null" {
		*s = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = ScalarString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err == nil {
		*s = ScalarString(num.String())
		return nil
	}

	*s = ScalarString(trimmed)
	return nil
}

// Hit is one patch record as returned by the listing endpoint. Every
// inbound field is optional; missing values decode to zero values. The
// listing payload also carries a special_product_names field which is
// intentionally not decoded and never reaches downstream stages.
type Hit struct {
	ID                   ScalarString `json:"id"`
	Title                string       `json:"title"`
	IssuedAt             string       `json:"issued_at"`
	ProductFriendlyNames StringList   `json:"product_friendly_names"`
	ProductArchitectures StringList   `json:"product_architectures"`

	// Stamped by the client at retrieval time, immutable afterwards.
	Severity string `json:"-"`

	// Merged in by the enrichment stage; empty when the lookup failed.
	DetailIBSID       string `json:"-"`
	DetailDescription string `json:"-"`
}

// Detail is the per-patch payload from the detail endpoint.
type Detail struct {
	IBSID       ScalarString `json:"ibs_id"`
	Description ScalarString `json:"description"`
}
