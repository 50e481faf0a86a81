package recguard

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Infer synthesizes a SchemaDefinition named name from one sample mapping by
// structural induction over its runtime shape:
//
//   - a nested mapping becomes a child record, inferred recursively and named
//     after its key;
//   - a sequence becomes ListOf(element kind) when all elements share one
//     kind, ListOf(any) when empty, and a fixed-arity tuple when mixed;
//   - a supported scalar becomes Scalar(its runtime kind);
//   - any other runtime kind is silently omitted (documented limitation).
//
// Every definition produced, children included, is registered in reg; a later
// inference under the same name overwrites the earlier entry. Keys are
// visited in sorted order so rendering the result is deterministic.
func Infer(reg *Registry, name string, sample map[string]any) *SchemaDefinition {
	def := &SchemaDefinition{name: name, index: map[string]int{}, aliases: map[string]string{}}
	for _, key := range sortedKeys(sample) {
		ft, ok := inferValue(reg, key, sample[key])
		if !ok {
			continue
		}
		_ = def.AddField(Field{Name: key, Type: ft})
	}
	reg.Register(def)
	return def
}

// inferValue classifies one sample value into a field type; ok reports
// whether the runtime kind is supported at all.
func inferValue(reg *Registry, key string, v any) (FieldType, bool) {
	switch s := v.(type) {
	case map[string]any:
		child := Infer(reg, schemaNameForKey(key), s)
		return Ref(child), true
	case []any:
		return inferList(reg, key, s), true
	case string:
		return String(), true
	case bool:
		return Bool(), true
	case float64:
		if float64(int64(s)) == s {
			return Int(), true
		}
		return Float(), true
	case float32:
		return Float(), true
	case int, int64, uint64:
		return Int(), true
	case json.Number:
		if _, err := s.Int64(); err == nil {
			return Int(), true
		}
		return Float(), true
	case time.Time:
		return Time(), true
	default:
		return FieldType{}, false
	}
}

// inferList classifies a sample sequence: empty lists carry no element
// evidence, all-mapping lists merge into a single child record, other
// homogeneous lists keep their single element kind, mixed lists become a
// positional tuple.
func inferList(reg *Registry, key string, items []any) FieldType {
	if len(items) == 0 {
		return ListOf(Any())
	}
	allMaps := true
	for _, it := range items {
		if _, ok := it.(map[string]any); !ok {
			allMaps = false
			break
		}
	}
	if allMaps {
		return ListOf(Ref(inferObjectList(reg, schemaNameForKey(key), items)))
	}
	elems := make([]FieldType, len(items))
	for i, it := range items {
		ft, ok := inferValue(reg, key, it)
		if !ok {
			ft = Any()
		}
		elems[i] = ft
	}
	homogeneous := true
	for _, ft := range elems[1:] {
		if ft.String() != elems[0].String() {
			homogeneous = false
			break
		}
	}
	if homogeneous {
		return ListOf(elems[0])
	}
	return Tuple(elems...)
}

// inferObjectList builds one child definition covering every mapping in
// items. The field set is the union of the element keys; a key missing or
// null in any element infers as optional, and the field type comes from the
// first element holding a supported value for that key. Keys with no
// supported value anywhere are omitted like any other unsupported sample.
func inferObjectList(reg *Registry, name string, items []any) *SchemaDefinition {
	union := map[string]struct{}{}
	for _, it := range items {
		for k := range it.(map[string]any) {
			union[k] = struct{}{}
		}
	}
	def := &SchemaDefinition{name: name, index: map[string]int{}, aliases: map[string]string{}}
	for _, key := range sortedKeys(union) {
		var (
			ft       FieldType
			found    bool
			everyone = true
		)
		for _, it := range items {
			v, present := it.(map[string]any)[key]
			if !present || v == nil {
				everyone = false
				continue
			}
			if !found {
				if t, ok := inferValue(reg, key, v); ok {
					ft, found = t, true
				}
			}
		}
		if !found {
			continue
		}
		if !everyone {
			ft = Optional(ft)
		}
		_ = def.AddField(Field{Name: key, Type: ft})
	}
	reg.Register(def)
	return def
}

// schemaNameForKey derives a child schema name from its wire key by
// upper-casing the first rune ("status" -> "Status").
func schemaNameForKey(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
