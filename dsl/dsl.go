// Package dsl provides a fluent builder for recguard schema definitions, the
// hand-written counterpart to schema inference.
package dsl

import (
	recguard "github.com/hirokit/recguard"
)

// Builder accumulates fields and aliases for one schema definition. Errors
// are deferred to Build so declarations chain cleanly.
type Builder struct {
	def *recguard.SchemaDefinition
	err error
}

// Schema starts a builder for a definition with the given name.
func Schema(name string) *Builder {
	return &Builder{def: recguard.MustSchema(name)}
}

// Field appends a required field.
func (b *Builder) Field(name string, t recguard.FieldType) *Builder {
	b.add(recguard.Field{Name: name, Type: t})
	return b
}

// Default appends a field that falls back to def when the input omits it.
func (b *Builder) Default(name string, t recguard.FieldType, def any) *Builder {
	b.add(recguard.Field{Name: name, Type: t, HasDefault: true, Default: def})
	return b
}

// Alias maps an incoming wire key to an already-declared field.
func (b *Builder) Alias(wire, field string) *Builder {
	if b.err == nil {
		b.err = b.def.Alias(wire, field)
	}
	return b
}

// Private appends a field whose wire key carries the private-field marker:
// the payload key "__name" decodes into the field "name".
func (b *Builder) Private(name string, t recguard.FieldType) *Builder {
	b.add(recguard.Field{Name: name, Type: t})
	if b.err == nil {
		b.err = b.def.AliasPrivate(name)
	}
	return b
}

// Build returns the definition, or the first error recorded while chaining.
func (b *Builder) Build() (*recguard.SchemaDefinition, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.def, nil
}

// MustBuild is Build that panics on error; intended for package-level schema
// declarations.
func (b *Builder) MustBuild() *recguard.SchemaDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

func (b *Builder) add(f recguard.Field) {
	if b.err == nil {
		b.err = b.def.AddField(f)
	}
}
