// Package recguard decodes schema-less JSON-like value trees into
// strongly-typed records declared by an explicit schema model, and runs the
// reverse direction: inferring a schema from one sample payload and rendering
// it back as schema source.
//
// It provides:
//
//   - Schema-driven decoding with per-field constructors (Decode/DecodeJSON)
//   - A stable error model (code, schema, field, wrapped cause chain)
//   - Schema inference from sample data (Infer/InferJSON/InferYAML)
//   - A printer for schema definitions and a parser for the printed source
//     (Print/ParseSchemaSource)
//
// Design policy:
//   - Keep only public APIs in the root package.
//   - Place the schema builder under dsl/, extra constructors under codec/,
//     and the CLI under cmd/recguard.
//   - The core performs no I/O: it reads an already-decoded value tree and
//     returns a typed record or one structured error.
//
// Typical usage:
//
//	fact := dsl.Schema("Fact").
//		Field("text", recguard.String()).
//		Field("updatedAt", recguard.Time()).
//		MustBuild()
//	rec, err := recguard.DecodeJSON(fact, body)
//
//	reg := recguard.NewRegistry()
//	def, err := recguard.InferJSON(reg, "Root", body)
//	fmt.Print(recguard.Print(def))
package recguard
