package recguard

import (
	"errors"
	"fmt"
)

// resolvedKind is the concrete decoding strategy a declared type classifies to.
type resolvedKind int

const (
	rScalar resolvedKind = iota
	rList
	rMap
	rLiteral
	rRecord
	rTuple
)

// resolution is a classified field type plus the parameters its strategy
// needs: the constructor id for scalars, element resolution for lists, key
// and value resolutions for maps, the allowed set for literals, the schema
// for records, per-position resolutions for tuples.
type resolution struct {
	kind         resolvedKind
	scalar       string
	elem         *resolution
	elemNullable bool // ListOf(Optional(T)): null elements are skipped
	key          *resolution
	value        *resolution
	literals     []any
	ref          *SchemaDefinition
	members      []resolution
}

// resolveType classifies one declared field type into a decoding strategy.
//
//   - Optional wrappers are stripped.
//   - A union resolves to its first non-wildcard member (documented policy,
//     not an error condition); a union of only wildcards resolves to its
//     first member.
//   - ListOf strips Optional from the element type and marks null elements
//     as skippable.
//   - MapOf resolves key and value independently; the Optional rule does not
//     apply there, an Optional map key or value type is unsupported.
//
// Anything that classifies under no strategy returns an error, surfaced by
// the decoder as UnsupportedTypeError.
func resolveType(t FieldType) (resolution, error) {
	switch t.kind {
	case KindOptional:
		return resolveType(*t.inner)
	case KindUnion:
		m, err := collapseUnion(t)
		if err != nil {
			return resolution{}, err
		}
		return resolveType(m)
	case KindList:
		elem := *t.inner
		nullable := false
		for elem.kind == KindOptional {
			nullable = true
			elem = *elem.inner
		}
		er, err := resolveType(elem)
		if err != nil {
			return resolution{}, err
		}
		return resolution{kind: rList, elem: &er, elemNullable: nullable}, nil
	case KindMap:
		kr, err := resolveMapComponent(*t.key, "key")
		if err != nil {
			return resolution{}, err
		}
		vr, err := resolveMapComponent(*t.value, "value")
		if err != nil {
			return resolution{}, err
		}
		return resolution{kind: rMap, key: &kr, value: &vr}, nil
	case KindLiteral:
		if len(t.literals) == 0 {
			return resolution{}, errors.New("empty literal set")
		}
		return resolution{kind: rLiteral, literals: t.literals}, nil
	case KindRecord:
		if t.ref == nil {
			return resolution{}, errors.New("record reference is nil")
		}
		return resolution{kind: rRecord, ref: t.ref}, nil
	case KindTuple:
		members := make([]resolution, len(t.members))
		for i, m := range t.members {
			mr, err := resolveType(m)
			if err != nil {
				return resolution{}, err
			}
			members[i] = mr
		}
		return resolution{kind: rTuple, members: members}, nil
	case KindScalar:
		return resolution{kind: rScalar, scalar: t.scalar}, nil
	default:
		return resolution{}, fmt.Errorf("unclassifiable type kind %d", t.kind)
	}
}

// resolveMapComponent classifies a map key or value type. Optional wrappers
// are not stripped here; they classify under no strategy.
func resolveMapComponent(t FieldType, role string) (resolution, error) {
	if t.kind == KindOptional {
		return resolution{}, fmt.Errorf("optional is not allowed as a map %s type", role)
	}
	return resolveType(t)
}

// collapseUnion picks the member a union decodes as: the first member that is
// not the wildcard scalar, falling back to the first member when every member
// is a wildcard.
func collapseUnion(t FieldType) (FieldType, error) {
	if len(t.members) == 0 {
		return FieldType{}, errors.New("empty union")
	}
	for _, m := range t.members {
		if m.kind == KindScalar && m.scalar == ScalarAny {
			continue
		}
		return m, nil
	}
	return t.members[0], nil
}
