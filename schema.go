package recguard

import (
	"fmt"
	"sort"
)

// TypeKind enumerates the closed set of field type shapes.
type TypeKind int

const (
	KindScalar  TypeKind = iota // bare constructor id (string, int, ...)
	KindOptional                // value may be absent or null
	KindList                    // ordered sequence of one inner type
	KindMap                     // string-keyed mapping of key/value types
	KindLiteral                 // value must equal one of a fixed set
	KindRecord                  // nested schema reference
	KindUnion                   // several candidate types; first concrete member wins
	KindTuple                   // fixed arity, one type per position
)

// Scalar constructor ids shipped with DefaultConstructors. Callers may use
// any id as long as the Constructors map used at decode time covers it.
const (
	ScalarString = "string"
	ScalarInt    = "int"
	ScalarFloat  = "float"
	ScalarBool   = "bool"
	ScalarAny    = "any"
	ScalarTime   = "time"
)

// FieldType describes how one field's value is validated and constructed.
// It is a closed tagged variant; use the constructor functions below.
type FieldType struct {
	kind     TypeKind
	scalar   string
	inner    *FieldType
	key      *FieldType
	value    *FieldType
	literals []any
	ref      *SchemaDefinition
	members  []FieldType
}

// Scalar returns a field type decoded by the constructor registered under id.
func Scalar(id string) FieldType { return FieldType{kind: KindScalar, scalar: id} }

// Shorthands for the built-in scalar constructor ids.
func String() FieldType { return Scalar(ScalarString) }
func Int() FieldType    { return Scalar(ScalarInt) }
func Float() FieldType  { return Scalar(ScalarFloat) }
func Bool() FieldType   { return Scalar(ScalarBool) }
func Any() FieldType    { return Scalar(ScalarAny) }
func Time() FieldType   { return Scalar(ScalarTime) }

// Optional wraps t so that a missing or null value decodes to an absent field
// instead of an error.
func Optional(t FieldType) FieldType {
	inner := t
	return FieldType{kind: KindOptional, inner: &inner}
}

// ListOf returns a list type with element type t.
func ListOf(t FieldType) FieldType {
	inner := t
	return FieldType{kind: KindList, inner: &inner}
}

// MapOf returns a string-keyed map type with the given key and value types.
// The key constructor receives the raw key string.
func MapOf(key, value FieldType) FieldType {
	k, v := key, value
	return FieldType{kind: KindMap, key: &k, value: &v}
}

// Literals returns a type whose values must equal one of the given values.
func Literals(values ...any) FieldType {
	return FieldType{kind: KindLiteral, literals: values}
}

// Ref returns a nested record type referencing def. The definition may still
// be empty at call time (mutually recursive schemas add fields afterwards);
// it must be complete before the first Decode call.
func Ref(def *SchemaDefinition) FieldType { return FieldType{kind: KindRecord, ref: def} }

// Union returns a type with several candidate member types. At decode time
// the first non-wildcard member is used; see resolveType.
func Union(members ...FieldType) FieldType { return FieldType{kind: KindUnion, members: members} }

// Tuple returns a fixed-arity type with one member type per position.
func Tuple(members ...FieldType) FieldType { return FieldType{kind: KindTuple, members: members} }

// Kind reports the shape of the type.
func (t FieldType) Kind() TypeKind { return t.kind }

// IsOptional reports whether the declared type tolerates an absent value.
func (t FieldType) IsOptional() bool { return t.kind == KindOptional }

// Field is one entry of a SchemaDefinition.
type Field struct {
	Name       string
	Type       FieldType
	HasDefault bool
	Default    any
}

// SchemaDefinition is the declared, named shape of a record: ordered fields
// plus an alias table mapping wire keys to internal field names. Field order
// is significant for printing, not for decoding.
type SchemaDefinition struct {
	name    string
	fields  []Field
	index   map[string]int
	aliases map[string]string
}

// NewSchema builds a definition from ordered fields. Field names must be
// unique within the definition.
func NewSchema(name string, fields ...Field) (*SchemaDefinition, error) {
	s := &SchemaDefinition{name: name, index: map[string]int{}, aliases: map[string]string{}}
	for _, f := range fields {
		if err := s.AddField(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error; intended for package-level
// schema declarations.
func MustSchema(name string, fields ...Field) *SchemaDefinition {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// AddField appends one field. It exists so mutually recursive definitions can
// be declared first and populated afterwards.
func (s *SchemaDefinition) AddField(f Field) error {
	if _, dup := s.index[f.Name]; dup {
		return fmt.Errorf("recguard: schema %s: duplicate field %q", s.name, f.Name)
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// Alias maps an incoming wire key to an internal field name. The field must
// already be declared.
func (s *SchemaDefinition) Alias(wire, field string) error {
	if _, ok := s.index[field]; !ok {
		return fmt.Errorf("recguard: schema %s: alias %q targets unknown field %q", s.name, wire, field)
	}
	s.aliases[wire] = field
	return nil
}

// Name returns the schema's declared name.
func (s *SchemaDefinition) Name() string { return s.name }

// Fields returns the ordered field list. The returned slice is a copy.
func (s *SchemaDefinition) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up one field by its internal name.
func (s *SchemaDefinition) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// FieldNames returns internal field names in declared order.
func (s *SchemaDefinition) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Registry maps schema names to definitions. It is caller-owned: inference
// writes into the registry it is handed, last write for a name wins, and
// nothing in this package keeps a process-global instance.
type Registry struct {
	defs  map[string]*SchemaDefinition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*SchemaDefinition{}}
}

// Register stores def under its name, replacing any previous entry.
func (r *Registry) Register(def *SchemaDefinition) {
	if _, seen := r.defs[def.name]; !seen {
		r.order = append(r.order, def.name)
	}
	r.defs[def.name] = def
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*SchemaDefinition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns registered names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// sortedKeys returns map keys in ascending order for deterministic iteration.
func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
