package serialize

import "fmt"

// DecodeError reports a malformed or missing wire field. It carries the
// offending key so callers can report where in the document decoding
// stopped.
type DecodeError struct {
	Key     string // wire key being decoded ("" for a bare value)
	Message string // what went wrong
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("decode: %s", e.Message)
	}
	return fmt.Sprintf("decode %q: %s", e.Key, e.Message)
}

// UnknownVariantError reports a discriminator whose bare name is not
// registered for the family being decoded.
type UnknownVariantError struct {
	Family string // variant family, e.g. "statement"
	Name   string // bare discriminator name after stripping
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("decode %s: unknown variant %q", e.Family, e.Name)
}

func missing(key string) error {
	return &DecodeError{Key: key, Message: "required field is absent"}
}

func mismatch(key, want string, got any) error {
	return &DecodeError{Key: key, Message: fmt.Sprintf("cannot coerce %T to %s", got, want)}
}

// in wraps an error produced while decoding a nested value with the key of
// the enclosing field.
func in(key string, err error) error {
	var de *DecodeError
	switch e := err.(type) {
	case *DecodeError:
		de = e
	default:
		return err
	}
	if de.Key == "" {
		return &DecodeError{Key: key, Message: de.Message}
	}
	return &DecodeError{Key: key + "." + de.Key, Message: de.Message}
}
