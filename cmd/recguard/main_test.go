package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestFromJSON_DefaultRootName(t *testing.T) {
	out, err := runCommand(t, `{"foo": "foo", "bar": {"bar": "bar"}}`, "fromjson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "schema Root {") {
		t.Fatalf("output missing default root name:\n%s", out)
	}
	if !strings.Contains(out, "schema Bar {") {
		t.Fatalf("output missing nested definition:\n%s", out)
	}
}

func TestFromJSON_NamedRoot(t *testing.T) {
	out, err := runCommand(t, `{"text": "x"}`, "fromjson", "Fact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "schema Fact {") {
		t.Fatalf("output = %s", out)
	}
}

func TestFromYAML(t *testing.T) {
	out, err := runCommand(t, "verified: true\ncount: 2\n", "fromyaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "verified: bool") || !strings.Contains(out, "count: int") {
		t.Fatalf("output = %s", out)
	}
}

func TestCheck(t *testing.T) {
	schema := "schema Fact {\n  text: string\n  count: int\n}\n"
	path := filepath.Join(t.TempDir(), "fact.schema")
	if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, `{"text": "x", "count": 3}`, "check", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Fact(") {
		t.Fatalf("output = %s", out)
	}

	if _, err := runCommand(t, `{"text": "x", "count": 3, "extra": 1}`, "check", path); err == nil {
		t.Fatalf("strict check should fail on unknown field")
	}
	if _, err := runCommand(t, `{"text": "x", "count": 3, "extra": 1}`, "check", path, "--lenient"); err != nil {
		t.Fatalf("lenient check failed: %v", err)
	}
}
