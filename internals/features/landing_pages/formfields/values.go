package formfields

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Values is a submission keyed by field id. Single-value fields hold at
// most one entry.
type Values map[string][]string

func (v Values) Get(id string) string {
	return first(v[id])
}

// Filled reports whether id carries at least one non-blank value.
func (v Values) Filled(id string) bool {
	for _, s := range v[id] {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Collect picks the schema's fields out of a posted form. Unknown keys are
// dropped and single-value fields keep only their first value.
func Collect(fields Fields, form url.Values) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		raw, ok := form[f.ID]
		if !ok {
			continue
		}
		out[f.ID] = pick(f, raw)
	}
	return out
}

// CollectMap is Collect for a decoded JSON object, where each value is a
// string, a scalar, or a list of those.
func CollectMap(fields Fields, m map[string]any) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		raw, ok := m[f.ID]
		if !ok || raw == nil {
			continue
		}
		var list []string
		switch t := raw.(type) {
		case []string:
			list = t
		case []any:
			for _, it := range t {
				if it != nil {
					list = append(list, scalar(it))
				}
			}
		default:
			list = []string{scalar(t)}
		}
		out[f.ID] = pick(f, list)
	}
	return out
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func pick(f Field, raw []string) []string {
	if f.Type.MultiValue() {
		vals := make([]string, 0, len(raw))
		for _, s := range raw {
			if s = strings.TrimSpace(s); s != "" {
				vals = append(vals, s)
			}
		}
		return vals
	}
	if len(raw) == 0 {
		return nil
	}
	return []string{strings.TrimSpace(raw[0])}
}

// Data flattens the values into the stored submission document: a string
// per single-value field and a list per multi-value field. Blank answers
// are left out.
func (v Values) Data(fields Fields) map[string]any {
	out := make(map[string]any, len(v))
	for _, f := range fields {
		if !v.Filled(f.ID) {
			continue
		}
		if f.Type.MultiValue() {
			out[f.ID] = append([]string(nil), v[f.ID]...)
			continue
		}
		out[f.ID] = v.Get(f.ID)
	}
	return out
}
