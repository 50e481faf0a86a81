package recguard

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Print renders def (and every record definition it references) as textual
// schema source. Rendering is depth-first and post-order: each referenced
// child definition is emitted in full immediately before the definition that
// uses it, so a definition always textually precedes its first point of use.
// There is no deduplication; a schema referenced from two parents is emitted
// twice, verbatim. Output is deterministic for a given definition.
func Print(def *SchemaDefinition) string {
	b := &strings.Builder{}
	appendDef(b, def)
	return b.String()
}

func appendDef(b *strings.Builder, def *SchemaDefinition) {
	for _, f := range def.fields {
		for _, child := range recordRefs(f.Type) {
			appendDef(b, child)
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(b, "schema %s {\n", def.name)
	for _, f := range def.fields {
		if f.HasDefault {
			fmt.Fprintf(b, "  %s: %s = %s\n", f.Name, f.Type, encodeLiteral(f.Default))
			continue
		}
		fmt.Fprintf(b, "  %s: %s\n", f.Name, f.Type)
	}
	for _, wire := range sortedKeys(def.aliases) {
		fmt.Fprintf(b, "  alias %s -> %s\n", wire, def.aliases[wire])
	}
	b.WriteString("}\n")
}

// recordRefs collects the record definitions referenced anywhere inside t,
// in declaration order.
func recordRefs(t FieldType) []*SchemaDefinition {
	switch t.kind {
	case KindRecord:
		if t.ref == nil {
			return nil
		}
		return []*SchemaDefinition{t.ref}
	case KindOptional, KindList:
		return recordRefs(*t.inner)
	case KindMap:
		return append(recordRefs(*t.key), recordRefs(*t.value)...)
	case KindUnion, KindTuple:
		var out []*SchemaDefinition
		for _, m := range t.members {
			out = append(out, recordRefs(m)...)
		}
		return out
	default:
		return nil
	}
}

// String renders the type in the printer's source syntax: scalar ids stay
// bare, "T?" is optional, "[]T" a list, "map[K]V" a map, "literal(a|b)" a
// literal set, "(A, B)" a tuple, "union(A|B)" a union, and a record renders
// as its schema name.
func (t FieldType) String() string {
	switch t.kind {
	case KindScalar:
		return t.scalar
	case KindOptional:
		return t.inner.String() + "?"
	case KindList:
		return "[]" + groupIfOptional(*t.inner)
	case KindMap:
		return "map[" + t.key.String() + "]" + groupIfOptional(*t.value)
	case KindLiteral:
		parts := make([]string, len(t.literals))
		for i, v := range t.literals {
			parts[i] = encodeLiteral(v)
		}
		return "literal(" + strings.Join(parts, "|") + ")"
	case KindRecord:
		if t.ref == nil {
			return "record(?)"
		}
		return t.ref.name
	case KindUnion:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return "union(" + strings.Join(parts, "|") + ")"
	case KindTuple:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("kind(%d)", t.kind)
	}
}

// groupIfOptional parenthesizes an optional element so "[](int?)" cannot be
// misread as an optional list.
func groupIfOptional(t FieldType) string {
	if t.kind == KindOptional {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func encodeLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
