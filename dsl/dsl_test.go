package dsl_test

import (
	"testing"

	recguard "github.com/hirokit/recguard"
	"github.com/hirokit/recguard/dsl"
)

func TestBuilder_Fact(t *testing.T) {
	status := dsl.Schema("Status").
		Field("verified", recguard.Bool()).
		Field("sentCount", recguard.Int()).
		MustBuild()
	fact := dsl.Schema("Fact").
		Field("text", recguard.String()).
		Field("status", recguard.Ref(status)).
		Default("source", recguard.String(), "api").
		Private("v", recguard.Int()).
		MustBuild()

	rec, err := recguard.Decode(fact, map[string]any{
		"text":   "x",
		"status": map[string]any{"verified": true, "sentCount": float64(1)},
		"__v":    float64(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value("source") != "api" {
		t.Fatalf("source default = %v", rec.Value("source"))
	}
	if rec.Value("v") != int64(0) {
		t.Fatalf("v = %v", rec.Value("v"))
	}
}

func TestBuilder_ErrorsDeferToBuild(t *testing.T) {
	_, err := dsl.Schema("S").
		Field("a", recguard.String()).
		Field("a", recguard.Int()).
		Build()
	if err == nil {
		t.Fatalf("duplicate field should surface at Build")
	}
	_, err = dsl.Schema("S").
		Alias("wire", "missing").
		Build()
	if err == nil {
		t.Fatalf("alias to unknown field should surface at Build")
	}
}
