package recguard

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Decode validates raw against schema and builds a typed record. It is
// all-or-nothing: either every field decodes and the returned Record is fully
// populated, or one structured error describes the first failure and nothing
// is kept. When several options are passed the last one wins.
//
// Per wire key: the key is normalized through the schema's alias table, null
// values leave the field unset, and the declared type's resolved strategy is
// applied to the value. Unknown keys fail under UnknownStrict and are dropped
// under UnknownLenient. After all keys are processed the record is
// materialized; a required field that never received a value fails there.
func Decode(schema *SchemaDefinition, raw map[string]any, opts ...DecodeOptions) (*Record, error) {
	var opt DecodeOptions
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	cons := opt.constructors()

	acc := make(map[string]any, len(raw))
	for _, key := range sortedKeys(raw) {
		v := raw[key]
		name, known := schema.resolveKey(key)
		if !known {
			if opt.Unknown == UnknownLenient {
				if opt.WarnFunc != nil {
					opt.WarnFunc(schema.name, key, v)
				}
				continue
			}
			return nil, &UnknownFieldError{Schema: schema.name, Key: key, Expected: schema.FieldNames()}
		}
		if v == nil {
			// Explicit null leaves the field unset; required fields are
			// enforced at materialization below.
			continue
		}
		f, _ := schema.Field(name)
		res, err := resolveType(f.Type)
		if err != nil {
			return nil, &UnsupportedTypeError{Schema: schema.name, Field: name, Reason: err.Error()}
		}
		dv, err := decodeValue(schema.name, name, res, v, opt, cons)
		if err != nil {
			return nil, err
		}
		acc[name] = dv
	}

	values := make(map[string]any, len(schema.fields))
	for _, f := range schema.fields {
		if v, ok := acc[f.Name]; ok {
			values[f.Name] = v
			continue
		}
		switch {
		case f.Type.IsOptional():
			values[f.Name] = nil
		case f.HasDefault:
			values[f.Name] = f.Default
		default:
			return nil, &ConstructionError{
				Schema: schema.name,
				Fields: acc,
				Err:    fmt.Errorf("missing required field %q", f.Name),
			}
		}
	}
	return &Record{schema: schema, values: values}, nil
}

// decodeValue dispatches one non-null value on its resolved strategy.
func decodeValue(schemaName, fieldName string, res resolution, v any, opt DecodeOptions, cons Constructors) (any, error) {
	switch res.kind {
	case rLiteral:
		for _, allowed := range res.literals {
			if literalEqual(allowed, v) {
				return v, nil
			}
		}
		return nil, &LiteralMismatchError{Schema: schemaName, Field: fieldName, Value: v, Allowed: res.literals}

	case rRecord:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v,
				Err: fmt.Errorf("expected object for %s, got %T", res.ref.name, v)}
		}
		// A nested failure already carries its own schema-qualified context;
		// it propagates unchanged.
		return Decode(res.ref, m, opt)

	case rScalar:
		c, ok := cons[res.scalar]
		if !ok {
			return nil, &UnsupportedTypeError{Schema: schemaName, Field: fieldName,
				Reason: fmt.Sprintf("no constructor registered for scalar %q", res.scalar)}
		}
		out, err := c(v)
		if err != nil {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v, Err: err}
		}
		return out, nil

	case rList:
		arr, ok := v.([]any)
		if !ok {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v,
				Err: fmt.Errorf("expected array, got %T", v)}
		}
		out := make([]any, 0, len(arr))
		for i, el := range arr {
			if el == nil && res.elemNullable {
				continue
			}
			ev, err := decodeValue(schemaName, fieldName, *res.elem, el, opt, cons)
			if err != nil {
				return nil, wrapIndexed(schemaName, fieldName, fmt.Sprintf("element %d", i), el, err)
			}
			out = append(out, ev)
		}
		return out, nil

	case rMap:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v,
				Err: fmt.Errorf("expected object, got %T", v)}
		}
		out := make(map[any]any, len(m))
		for _, k := range sortedKeys(m) {
			kk, err := decodeValue(schemaName, fieldName, *res.key, k, opt, cons)
			if err != nil {
				return nil, wrapIndexed(schemaName, fieldName, fmt.Sprintf("key %q", k), k, err)
			}
			vv, err := decodeValue(schemaName, fieldName, *res.value, m[k], opt, cons)
			if err != nil {
				return nil, wrapIndexed(schemaName, fieldName, fmt.Sprintf("value for key %q", k), m[k], err)
			}
			out[kk] = vv
		}
		return out, nil

	case rTuple:
		arr, ok := v.([]any)
		if !ok {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v,
				Err: fmt.Errorf("expected array, got %T", v)}
		}
		if len(arr) != len(res.members) {
			return nil, &CoercionError{Schema: schemaName, Field: fieldName, Value: v,
				Err: fmt.Errorf("expected %d elements, got %d", len(res.members), len(arr))}
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			ev, err := decodeValue(schemaName, fieldName, res.members[i], el, opt, cons)
			if err != nil {
				return nil, wrapIndexed(schemaName, fieldName, fmt.Sprintf("element %d", i), el, err)
			}
			out[i] = ev
		}
		return out, nil

	default:
		return nil, &UnsupportedTypeError{Schema: schemaName, Field: fieldName,
			Reason: fmt.Sprintf("unclassified strategy %d", res.kind)}
	}
}

// wrapIndexed adds position context (list index, map key) to an error raised
// inside a container. Failures of this field's own constructors are rewrapped
// with the position; nested record failures already carry their path and pass
// through unchanged.
func wrapIndexed(schemaName, fieldName, position string, raw any, err error) error {
	var ce *CoercionError
	if errors.As(err, &ce) && ce.Schema == schemaName && ce.Field == fieldName {
		return &CoercionError{Schema: schemaName, Field: fieldName, Value: raw,
			Err: fmt.Errorf("%s: %w", position, ce.Err)}
	}
	var lm *LiteralMismatchError
	if errors.As(err, &lm) && lm.Schema == schemaName && lm.Field == fieldName {
		return &CoercionError{Schema: schemaName, Field: fieldName, Value: raw,
			Err: fmt.Errorf("%s: %w", position, error(lm))}
	}
	return err
}

// literalEqual compares a declared literal against a raw value, treating all
// numeric representations (int, int64, float64, json.Number) as one domain.
func literalEqual(allowed, v any) bool {
	af, aok := numericValue(allowed)
	vf, vok := numericValue(v)
	if aok && vok {
		return af == vf
	}
	return reflect.DeepEqual(allowed, v)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
