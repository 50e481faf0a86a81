package recguard

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ParseSchemaSource parses textual schema source in the format Print emits
// and registers every definition it contains in reg, in order of appearance.
// It returns the last definition, which by the printer's child-before-parent
// ordering is the root. Already-registered names resolve as record references,
// so source produced by Print round-trips through a fresh registry.
func ParseSchemaSource(reg *Registry, src string) (*SchemaDefinition, error) {
	var cur, last *SchemaDefinition
	for i, raw := range strings.Split(src, "\n") {
		ln := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "schema "):
			if cur != nil {
				return nil, fmt.Errorf("recguard: line %d: schema %s is not closed", ln, cur.name)
			}
			rest := strings.TrimSpace(strings.TrimPrefix(line, "schema "))
			if !strings.HasSuffix(rest, "{") {
				return nil, fmt.Errorf("recguard: line %d: expected '{' after schema name", ln)
			}
			name := strings.TrimSpace(strings.TrimSuffix(rest, "{"))
			if name == "" {
				return nil, fmt.Errorf("recguard: line %d: missing schema name", ln)
			}
			cur = &SchemaDefinition{name: name, index: map[string]int{}, aliases: map[string]string{}}

		case line == "}":
			if cur == nil {
				return nil, fmt.Errorf("recguard: line %d: '}' outside schema", ln)
			}
			reg.Register(cur)
			last, cur = cur, nil

		case strings.HasPrefix(line, "alias ") && !strings.Contains(line, ":"):
			if cur == nil {
				return nil, fmt.Errorf("recguard: line %d: alias outside schema", ln)
			}
			parts := strings.SplitN(strings.TrimPrefix(line, "alias "), "->", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("recguard: line %d: expected 'alias wire -> field'", ln)
			}
			if err := cur.Alias(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}

		default:
			if cur == nil {
				return nil, fmt.Errorf("recguard: line %d: field outside schema", ln)
			}
			idx := strings.Index(line, ":")
			if idx < 0 {
				return nil, fmt.Errorf("recguard: line %d: expected 'name: type'", ln)
			}
			f := Field{Name: strings.TrimSpace(line[:idx])}
			spec := strings.TrimSpace(line[idx+1:])
			if cut := strings.Index(spec, " = "); cut >= 0 {
				var dv any
				if err := json.Unmarshal([]byte(strings.TrimSpace(spec[cut+3:])), &dv); err != nil {
					return nil, fmt.Errorf("recguard: line %d: bad default: %w", ln, err)
				}
				f.HasDefault = true
				f.Default = dv
				spec = strings.TrimSpace(spec[:cut])
			}
			t, err := parseTypeSpec(reg, spec)
			if err != nil {
				return nil, fmt.Errorf("recguard: line %d: %w", ln, err)
			}
			f.Type = t
			if err := cur.AddField(f); err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("recguard: schema %s is not closed", cur.name)
	}
	if last == nil {
		return nil, fmt.Errorf("recguard: no schema definitions in source")
	}
	return last, nil
}

// parseTypeSpec parses one type in the printer's syntax.
func parseTypeSpec(reg *Registry, s string) (FieldType, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return FieldType{}, fmt.Errorf("empty type")

	case strings.HasSuffix(s, "?"):
		inner, err := parseTypeSpec(reg, s[:len(s)-1])
		if err != nil {
			return FieldType{}, err
		}
		return Optional(inner), nil

	case strings.HasPrefix(s, "[]"):
		inner, err := parseTypeSpec(reg, s[2:])
		if err != nil {
			return FieldType{}, err
		}
		return ListOf(inner), nil

	case strings.HasPrefix(s, "map["):
		depth := 1
		i := 4
		for ; i < len(s) && depth > 0; i++ {
			switch s[i] {
			case '[':
				depth++
			case ']':
				depth--
			}
		}
		if depth != 0 {
			return FieldType{}, fmt.Errorf("unterminated map key in %q", s)
		}
		key, err := parseTypeSpec(reg, s[4:i-1])
		if err != nil {
			return FieldType{}, err
		}
		value, err := parseTypeSpec(reg, s[i:])
		if err != nil {
			return FieldType{}, err
		}
		return MapOf(key, value), nil

	case strings.HasPrefix(s, "literal(") && strings.HasSuffix(s, ")"):
		parts, err := splitTop(s[len("literal("):len(s)-1], '|')
		if err != nil {
			return FieldType{}, err
		}
		values := make([]any, len(parts))
		for i, p := range parts {
			var v any
			if err := json.Unmarshal([]byte(strings.TrimSpace(p)), &v); err != nil {
				return FieldType{}, fmt.Errorf("bad literal value %q: %w", p, err)
			}
			values[i] = v
		}
		return Literals(values...), nil

	case strings.HasPrefix(s, "union(") && strings.HasSuffix(s, ")"):
		parts, err := splitTop(s[len("union("):len(s)-1], '|')
		if err != nil {
			return FieldType{}, err
		}
		members := make([]FieldType, len(parts))
		for i, p := range parts {
			m, err := parseTypeSpec(reg, p)
			if err != nil {
				return FieldType{}, err
			}
			members[i] = m
		}
		return Union(members...), nil

	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		parts, err := splitTop(s[1:len(s)-1], ',')
		if err != nil {
			return FieldType{}, err
		}
		if len(parts) == 1 {
			// grouping parens, e.g. the "(int?)" a list element prints as
			return parseTypeSpec(reg, parts[0])
		}
		members := make([]FieldType, len(parts))
		for i, p := range parts {
			m, err := parseTypeSpec(reg, p)
			if err != nil {
				return FieldType{}, err
			}
			members[i] = m
		}
		return Tuple(members...), nil

	default:
		if def, ok := reg.Lookup(s); ok {
			return Ref(def), nil
		}
		if r := s[0]; r >= 'A' && r <= 'Z' {
			return FieldType{}, fmt.Errorf("unknown schema %q (definitions must precede use)", s)
		}
		return Scalar(s), nil
	}
}

// splitTop splits s on sep at nesting depth zero, respecting (), [] and
// double-quoted JSON strings with escapes.
func splitTop(s string, sep byte) ([]string, error) {
	var parts []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parens in %q", s)
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 || inString {
		return nil, fmt.Errorf("unbalanced parens in %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}
