// Package codec provides extra scalar constructors for recguard schemas,
// mainly timestamp extraction from formatted strings.
package codec

import (
	"fmt"
	"time"

	recguard "github.com/hirokit/recguard"
)

// TimeRFC3339 returns the default timestamp constructor, which parses
// RFC3339 strings (Nano first, plain form as a fallback) into time.Time.
func TimeRFC3339() recguard.Constructor {
	return recguard.ConstructTime
}

// TimeFormat returns a constructor parsing timestamps with the given layout,
// for wire formats like "02/01/2006" dates that RFC3339 does not cover.
func TimeFormat(layout string) recguard.Constructor {
	return func(v any) (any, error) {
		s, err := stringInput(v)
		if err != nil {
			return nil, err
		}
		return time.Parse(layout, s)
	}
}

func stringInput(v any) (string, error) {
	if t, ok := v.(time.Time); ok {
		// Already typed; round-trip through the canonical rendering.
		return t.UTC().Format(time.RFC3339Nano), nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected timestamp string, got %T", v)
	}
	return s, nil
}
