package sheet

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// coerceDepth bounds recursive reads into nested cell objects so a
// self-referencing payload cannot recurse forever.
const coerceDepth = 5

// Cell is a polymorphic value from the sheet service. The same field may
// arrive as a bare number, a bare string, or an object carrying some subset
// of {value, total, calculation, text}. Every read goes through one of the
// coercion methods below; unrecognized shapes coerce to the zero value.
type Cell struct {
	raw any
}

// Num builds a numeric cell. Used by tests and the normalize handler.
func Num(v float64) Cell { return Cell{raw: v} }

// Str builds a string cell.
func Str(s string) Cell { return Cell{raw: s} }

// Obj builds an object cell from a plain map.
func Obj(m map[string]any) Cell { return Cell{raw: m} }

// CellFrom wraps an already-decoded value, whatever its shape.
func CellFrom(v any) Cell { return Cell{raw: v} }

// UnmarshalJSON accepts any JSON shape. It never returns an error so a
// malformed cell cannot abort decoding of the surrounding payload.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		c.raw = nil
		return nil
	}
	c.raw = v
	return nil
}

// MarshalJSON round-trips the original shape.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.raw)
}

// Raw exposes the decoded value for passthrough fields.
func (c Cell) Raw() any { return c.raw }

// IsEmpty reports whether the cell carries nothing usable.
func (c Cell) IsEmpty() bool {
	switch v := c.raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// Field reads a named member of an object-shaped cell.
func (c Cell) Field(name string) (Cell, bool) {
	m, ok := c.raw.(map[string]any)
	if !ok {
		return Cell{}, false
	}
	v, ok := m[name]
	if !ok {
		return Cell{}, false
	}
	return Cell{raw: v}, true
}

// Items returns the elements of an array-shaped cell.
func (c Cell) Items() []Cell {
	arr, ok := c.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Cell, 0, len(arr))
	for _, v := range arr {
		out = append(out, Cell{raw: v})
	}
	return out
}

// Number resolves a numeric reading with max-biased field order:
// total, then value, then the leading integer of a calculation string,
// then text. Bare numbers and numeric strings resolve directly.
func (c Cell) Number() (float64, bool) {
	return coerceNumber(c.raw, []string{"total", "value", "calculation", "text"}, coerceDepth)
}

// Current resolves a numeric reading with current-biased field order:
// value first, never total. Slot and pool "current" reads use this so a
// drained pool is not mistaken for a full one.
func (c Cell) Current() (float64, bool) {
	return coerceNumber(c.raw, []string{"value", "calculation", "text"}, coerceDepth)
}

// ValueFirst resolves numerically preferring value over total. Generic
// resource pools read through this order.
func (c Cell) ValueFirst() (float64, bool) {
	return coerceNumber(c.raw, []string{"value", "total", "calculation", "text"}, coerceDepth)
}

// Int is Number truncated to an int.
func (c Cell) Int() (int, bool) {
	f, ok := c.Number()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool resolves a truthy reading: a bare bool, a nonzero number, or the
// string "true".
func (c Cell) Bool() bool {
	switch v := c.raw.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	case map[string]any:
		if inner, ok := c.Field("value"); ok {
			return inner.Bool()
		}
		return false
	default:
		return false
	}
}

// Text resolves a textual reading: a bare string as-is; an object prefers
// value, then text. Numbers format without a trailing decimal point.
func (c Cell) Text() string {
	return coerceText(c.raw, coerceDepth)
}

var leadingIntRe = regexp.MustCompile(`^\s*([+-]?\d+)`)

func coerceNumber(raw any, order []string, depth int) (float64, bool) {
	if depth <= 0 {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case bool:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			if m := leadingIntRe.FindStringSubmatch(v); m != nil {
				f, err = strconv.ParseFloat(m[1], 64)
				if err == nil {
					return f, true
				}
			}
			return 0, false
		}
		return f, true
	case map[string]any:
		for _, key := range order {
			inner, ok := v[key]
			if !ok || inner == nil {
				continue
			}
			if f, ok := coerceNumber(inner, order, depth-1); ok {
				return f, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func coerceText(raw any, depth int) string {
	if depth <= 0 {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		for _, key := range []string{"value", "text", "calculation"} {
			if inner, ok := v[key]; ok && inner != nil {
				if s := coerceText(inner, depth-1); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return ""
	}
}
