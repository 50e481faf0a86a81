package recguard

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON unmarshals a JSON object and decodes it against schema. It is a
// convenience entry point; obtaining the bytes is the caller's concern.
func DecodeJSON(schema *SchemaDefinition, data []byte, opts ...DecodeOptions) (*Record, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("recguard: invalid JSON: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recguard: top-level JSON value is %T, want object", v)
	}
	return Decode(schema, m, opts...)
}

// InferJSON infers a schema named name from one JSON object sample.
func InferJSON(reg *Registry, name string, data []byte) (*SchemaDefinition, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("recguard: invalid JSON: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recguard: top-level JSON value is %T, want object", v)
	}
	return Infer(reg, name, m), nil
}

// InferYAML infers a schema named name from one YAML mapping sample. YAML
// timestamps arrive as time.Time and infer as the time scalar.
func InferYAML(reg *Registry, name string, data []byte) (*SchemaDefinition, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("recguard: invalid YAML: %w", err)
	}
	m, ok := normalizeYAML(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recguard: top-level YAML value is %T, want mapping", v)
	}
	return Infer(reg, name, m), nil
}

// normalizeYAML rewrites the key type the YAML decoder uses for mappings with
// non-string keys so the sample matches the decoder's raw-value shape.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
