package recguard

// PrivateMarker is the wire prefix conventionally carried by private fields
// in payloads produced by attribute-mangling languages (for example "__v").
const PrivateMarker = "__"

// AliasPrivate registers the conventional private-field alias for field: the
// wire key PrivateMarker+field is mapped to field. It is shorthand for
// Alias(PrivateMarker+field, field).
func (s *SchemaDefinition) AliasPrivate(field string) error {
	return s.Alias(PrivateMarker+field, field)
}

// resolveKey normalizes an incoming wire key to the schema's internal field
// name: the explicit alias table is consulted first, then direct field-name
// match. There is no implicit rewriting rule; every rename is declared.
func (s *SchemaDefinition) resolveKey(key string) (string, bool) {
	if name, ok := s.aliases[key]; ok {
		return name, true
	}
	if _, ok := s.index[key]; ok {
		return key, true
	}
	return "", false
}
