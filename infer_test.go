package recguard_test

import (
	"testing"

	recguard "github.com/hirokit/recguard"
)

func TestInfer_ScalarsAndNestedRecord(t *testing.T) {
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", map[string]any{
		"a": "x",
		"b": map[string]any{"c": float64(1)},
	})
	if def.Name() != "Root" {
		t.Fatalf("name = %q", def.Name())
	}
	a, ok := def.Field("a")
	if !ok || a.Type.String() != "string" {
		t.Fatalf("a = %v", a.Type)
	}
	b, ok := def.Field("b")
	if !ok || b.Type.Kind() != recguard.KindRecord || b.Type.String() != "B" {
		t.Fatalf("b = %v", b.Type)
	}
	child, ok := reg.Lookup("B")
	if !ok {
		t.Fatalf("child definition not registered")
	}
	fields := child.Fields()
	if len(fields) != 1 || fields[0].Name != "c" || fields[0].Type.String() != "int" {
		t.Fatalf("B fields = %v", fields)
	}
}

func TestInfer_Lists(t *testing.T) {
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", map[string]any{
		"empty": []any{},
		"homog": []any{float64(1), float64(2)},
		"mixed": []any{float64(1), "x"},
	})
	cases := map[string]string{
		"empty": "[]any",
		"homog": "[]int",
		"mixed": "(int, string)",
	}
	for name, want := range cases {
		f, ok := def.Field(name)
		if !ok {
			t.Fatalf("field %s missing", name)
		}
		if got := f.Type.String(); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestInfer_NumberKinds(t *testing.T) {
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", map[string]any{
		"count": float64(3),
		"ratio": float64(0.5),
		"flag":  true,
	})
	for name, want := range map[string]string{"count": "int", "ratio": "float", "flag": "bool"} {
		f, _ := def.Field(name)
		if got := f.Type.String(); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestInfer_UnsupportedKindOmitted(t *testing.T) {
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", map[string]any{
		"keep": "x",
		"drop": nil,
	})
	if _, ok := def.Field("drop"); ok {
		t.Fatalf("unsupported runtime kind should be omitted")
	}
	if _, ok := def.Field("keep"); !ok {
		t.Fatalf("supported field missing")
	}
}

func TestInfer_ListOfObjects(t *testing.T) {
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", map[string]any{
		"items": []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2)},
		},
	})
	f, _ := def.Field("items")
	if got := f.Type.String(); got != "[]Items" {
		t.Fatalf("items = %q, want []Items", got)
	}
	if _, ok := reg.Lookup("Items"); !ok {
		t.Fatalf("element definition not registered")
	}
}

func TestInfer_ObjectListUnevenKeys(t *testing.T) {
	reg := recguard.NewRegistry()
	sample := map[string]any{
		"items": []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2), "name": "x"},
		},
	}
	recguard.Infer(reg, "Root", sample)
	items, ok := reg.Lookup("Items")
	if !ok {
		t.Fatalf("element definition not registered")
	}
	id, _ := items.Field("id")
	if got := id.Type.String(); got != "int" {
		t.Fatalf("id = %q, want int", got)
	}
	name, ok := items.Field("name")
	if !ok {
		t.Fatalf("key present in only some elements should still be inferred")
	}
	if got := name.Type.String(); got != "string?" {
		t.Fatalf("name = %q, want string?", got)
	}

	// The inferred schema must admit every element of its own sample.
	root, _ := reg.Lookup("Root")
	rec, err := recguard.Decode(root, sample)
	if err != nil {
		t.Fatalf("decoding the sample against its inferred schema: %v", err)
	}
	list := rec.Value("items").([]any)
	if first := list[0].(*recguard.Record); first.Value("name") != nil {
		t.Fatalf("absent optional field should decode to nil, got %v", first.Value("name"))
	}
}

func TestInfer_RegistryLastWriteWins(t *testing.T) {
	reg := recguard.NewRegistry()
	recguard.Infer(reg, "Root", map[string]any{"a": "x"})
	recguard.Infer(reg, "Root", map[string]any{"b": float64(1)})
	def, _ := reg.Lookup("Root")
	if _, ok := def.Field("a"); ok {
		t.Fatalf("earlier inference should have been overwritten")
	}
	if _, ok := def.Field("b"); !ok {
		t.Fatalf("latest inference missing")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "Root" {
		t.Fatalf("names = %v", names)
	}
}

func TestInferThenDecode_RoundTrip(t *testing.T) {
	data := map[string]any{
		"used":   false,
		"source": "user",
		"text":   "Blackie inherited 15 million pounds.",
		"status": map[string]any{"verified": true, "sentCount": float64(1)},
		"tags":   []any{"rich", "cat"},
	}
	reg := recguard.NewRegistry()
	def := recguard.Infer(reg, "Root", data)
	rec, err := recguard.Decode(def, data)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	status := rec.Value("status").(*recguard.Record)
	if status.Value("sentCount") != int64(1) {
		t.Fatalf("sentCount = %v", status.Value("sentCount"))
	}
	tags := rec.Value("tags").([]any)
	if len(tags) != 2 || tags[0] != "rich" {
		t.Fatalf("tags = %v", tags)
	}
}
