package recguard

import (
	"fmt"
	"strings"
)

// Record is the typed output of a successful decode: an immutable mapping
// from field name to resolved value, conforming to its SchemaDefinition.
// Optional fields absent from the input are present with a nil value. A
// Record is only ever fully populated; failed decodes return no Record.
type Record struct {
	schema *SchemaDefinition
	values map[string]any
}

// Schema returns the definition this record conforms to.
func (r *Record) Schema() *SchemaDefinition { return r.schema }

// Name returns the schema name.
func (r *Record) Name() string { return r.schema.name }

// Get returns the value stored under the internal field name. Declared
// fields always report ok=true; absent optionals carry a nil value.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Value returns the field's value, or nil when the field is not declared.
func (r *Record) Value(field string) any { return r.values[field] }

// Map returns a shallow copy of the field values. Nested records stay
// *Record; mutate the copy freely, the record itself stays unchanged.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// String renders the record in declared field order, e.g.
// Fact(text: "...", deleted: false).
func (r *Record) String() string {
	b := &strings.Builder{}
	b.WriteString(r.schema.name)
	b.WriteByte('(')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		if nested, ok := r.values[f.Name].(*Record); ok {
			fmt.Fprintf(b, "%s: %s", f.Name, nested)
			continue
		}
		fmt.Fprintf(b, "%s: %#v", f.Name, r.values[f.Name])
	}
	b.WriteByte(')')
	return b.String()
}
