package recguard_test

import (
	"strings"
	"testing"

	recguard "github.com/hirokit/recguard"
)

const factSource = `
schema Status {
  verified: bool
  sentCount: int
}

schema Fact {
  text: string
  deleted: bool
  status: Status
  user: string?
  v: int = 0
  alias __v -> v
}
`

func TestParseSchemaSource_Full(t *testing.T) {
	reg := recguard.NewRegistry()
	root, err := recguard.ParseSchemaSource(reg, factSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Name() != "Fact" {
		t.Fatalf("root = %q, want Fact", root.Name())
	}
	if names := reg.Names(); len(names) != 2 || names[0] != "Status" {
		t.Fatalf("names = %v", names)
	}
	user, _ := root.Field("user")
	if !user.Type.IsOptional() {
		t.Fatalf("user should be optional")
	}
	v, _ := root.Field("v")
	if !v.HasDefault || v.Default != float64(0) {
		t.Fatalf("v default = %v (%T)", v.Default, v.Default)
	}

	rec, err := recguard.Decode(root, map[string]any{
		"text":    "x",
		"deleted": false,
		"status":  map[string]any{"verified": true, "sentCount": float64(2)},
		"__v":     float64(7),
	})
	if err != nil {
		t.Fatalf("decode against parsed schema: %v", err)
	}
	if rec.Value("v") != int64(7) {
		t.Fatalf("v = %v", rec.Value("v"))
	}
	if rec.Value("user") != nil {
		t.Fatalf("user = %v, want nil", rec.Value("user"))
	}
}

func TestParseSchemaSource_RoundTripsPrint(t *testing.T) {
	sample := map[string]any{
		"a":      "x",
		"nested": map[string]any{"n": float64(1)},
		"list":   []any{float64(1), float64(2)},
		"mixed":  []any{float64(1), "two"},
	}
	printed := recguard.Print(recguard.Infer(recguard.NewRegistry(), "Root", sample))

	reg := recguard.NewRegistry()
	parsed, err := recguard.ParseSchemaSource(reg, printed)
	if err != nil {
		t.Fatalf("parse printed source: %v", err)
	}
	if got := recguard.Print(parsed); got != printed {
		t.Fatalf("print/parse/print not stable:\n%s\nvs\n%s", printed, got)
	}
	if _, err := recguard.Decode(parsed, sample); err != nil {
		t.Fatalf("decode against reparsed schema: %v", err)
	}
}

func TestParseSchemaSource_Errors(t *testing.T) {
	cases := map[string]string{
		"unterminated schema": "schema X {\n  a: int\n",
		"field outside":       "a: int\n",
		"missing brace":       "schema X\n}\n",
		"forward reference":   "schema X {\n  a: Missing\n}\n",
		"empty source":        "\n\n",
	}
	for name, src := range cases {
		if _, err := recguard.ParseSchemaSource(recguard.NewRegistry(), src); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseSchemaSource_TypeSpecs(t *testing.T) {
	src := strings.Join([]string{
		"schema S {",
		"  a: [](int?)",
		"  b: map[string]float",
		`  c: literal("x"|"y, z")`,
		"  d: (int, string, bool)",
		"  e: union(string|int)",
		"}",
	}, "\n")
	reg := recguard.NewRegistry()
	def, err := recguard.ParseSchemaSource(reg, src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{
		"a": "[](int?)",
		"b": "map[string]float",
		"c": `literal("x"|"y, z")`,
		"d": "(int, string, bool)",
		"e": "union(string|int)",
	}
	for name, w := range want {
		f, ok := def.Field(name)
		if !ok {
			t.Fatalf("field %s missing", name)
		}
		if got := f.Type.String(); got != w {
			t.Fatalf("%s = %q, want %q", name, got, w)
		}
	}
}
