package recguard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Constructor converts one raw value into a domain value, or reports why it
// cannot. Constructors carry the extraction logic for scalar field types; the
// decoder wraps any failure with schema and field context.
type Constructor func(v any) (any, error)

// Constructors maps scalar constructor ids to conversion functions. The map
// is read-only during decode and may be shared across concurrent decodes.
type Constructors map[string]Constructor

// DefaultConstructors returns a fresh copy of the built-in constructor set:
// string, int, float, bool, any and time. Callers may extend or replace
// entries before passing the map via DecodeOptions.
func DefaultConstructors() Constructors {
	out := make(Constructors, len(defaultConstructors))
	for k, v := range defaultConstructors {
		out[k] = v
	}
	return out
}

var defaultConstructors = Constructors{
	ScalarString: ConstructString,
	ScalarInt:    ConstructInt,
	ScalarFloat:  ConstructFloat,
	ScalarBool:   ConstructBool,
	ScalarAny:    ConstructAny,
	ScalarTime:   ConstructTime,
}

// ConstructString renders any scalar as a string. Like the string type in
// loosely-typed schemas it never fails; it is the deliberate wildcard hole.
func ConstructString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// ConstructInt produces an int64 from numeric input or a decimal string.
// Fractional floats are rejected rather than truncated.
func ConstructInt(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	case float64:
		i := int64(n)
		if float64(i) != n {
			return nil, fmt.Errorf("%v is not an integer", n)
		}
		return i, nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	case bool:
		if n {
			return int64(1), nil
		}
		return int64(0), nil
	default:
		return nil, fmt.Errorf("%v (%T) is not int", v, v)
	}
}

// ConstructFloat produces a float64 from numeric input or a decimal string.
func ConstructFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return nil, fmt.Errorf("%v (%T) is not float", v, v)
	}
}

// ConstructBool accepts booleans and strconv-parsable strings ("true", "1", ...).
func ConstructBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	default:
		return nil, fmt.Errorf("%v (%T) is not bool", v, v)
	}
}

// ConstructAny passes the raw value through unchanged.
func ConstructAny(v any) (any, error) { return v, nil }

// ConstructTime parses an RFC3339 string into time.Time. Already-typed
// time.Time values (as produced by the YAML decoder) pass through.
func ConstructTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, nil
		}
		return time.Parse(time.RFC3339, t)
	default:
		return nil, fmt.Errorf("%v (%T) is not a timestamp", v, v)
	}
}
