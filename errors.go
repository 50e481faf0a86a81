package recguard

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownField    = "unknown_field"
	CodeLiteralMismatch = "literal_mismatch"
	CodeCoercion        = "coercion"
	CodeConstruction    = "construction"
	CodeUnsupportedType = "unsupported_type"
)

// DecodeError is implemented by every error the decoder returns. Code is one
// of the constants above.
type DecodeError interface {
	error
	Code() string
}

// AsDecodeError extracts the first DecodeError in err's chain, so callers can
// branch on Code without an errors.As per concrete type.
func AsDecodeError(err error) (DecodeError, bool) {
	var de DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// UnknownFieldError reports a wire key that matches no declared field under
// the strict unknown-field policy.
type UnknownFieldError struct {
	Schema   string
	Key      string
	Expected []string // declared field names in schema order
}

func (e *UnknownFieldError) Code() string { return CodeUnknownField }

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %s (expected one of %s)",
		e.Key, e.Schema, strings.Join(e.Expected, ", "))
}

// LiteralMismatchError reports a value outside a literal set.
type LiteralMismatchError struct {
	Schema  string
	Field   string
	Value   any
	Allowed []any
}

func (e *LiteralMismatchError) Code() string { return CodeLiteralMismatch }

func (e *LiteralMismatchError) Error() string {
	return fmt.Sprintf("in %s, field %s: %v is not one of the literal values %v",
		e.Schema, e.Field, e.Value, e.Allowed)
}

// CoercionError reports a field value the registered constructor rejected.
// Err carries the underlying conversion failure; nested failures chain so the
// message reads as a path from the outermost schema to the failing leaf.
type CoercionError struct {
	Schema string
	Field  string
	Value  any
	Err    error
}

func (e *CoercionError) Code() string { return CodeCoercion }

func (e *CoercionError) Error() string {
	return fmt.Sprintf("in %s, field %s: cannot construct from %v: %v",
		e.Schema, e.Field, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// ConstructionError reports a record that could not be materialized after all
// keys were processed, typically because a required field never received a
// value. Fields holds the accumulator at the point of failure.
type ConstructionError struct {
	Schema string
	Fields map[string]any
	Err    error
}

func (e *ConstructionError) Code() string { return CodeConstruction }

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("while constructing %s from %v: %v", e.Schema, e.Fields, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a declared field type that classifies under no
// decoding strategy (or a scalar id with no registered constructor).
type UnsupportedTypeError struct {
	Schema string
	Field  string
	Reason string
}

func (e *UnsupportedTypeError) Code() string { return CodeUnsupportedType }

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("in %s, field %s: unsupported type: %s", e.Schema, e.Field, e.Reason)
}
