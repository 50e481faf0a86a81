package recguard

// UnknownPolicy controls how wire keys with no matching field are handled.
type UnknownPolicy int

const (
	UnknownStrict  UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownLenient                      // Drop unknown keys.
)

// DecodeOptions bundles decoding options. The zero value means strict
// unknown-field handling with the default constructor set.
type DecodeOptions struct {
	Unknown UnknownPolicy
	// Constructors overrides the scalar constructor set for this decode.
	// Nil uses DefaultConstructors().
	Constructors Constructors
	// WarnFunc, when set, observes keys dropped under UnknownLenient. The
	// decoder itself never logs.
	WarnFunc func(schema, key string, value any)
}

// constructors returns the effective constructor set for this decode.
func (o DecodeOptions) constructors() Constructors {
	if o.Constructors != nil {
		return o.Constructors
	}
	return defaultConstructors
}
