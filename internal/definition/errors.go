package definition

import "fmt"

// UnsupportedTypeError is returned when an object cannot be viewed as a
// definition node.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported definition type %s", e.Type)
}

// DecodeError reports a malformed document.
type DecodeError struct {
	// Path locates the offending node, e.g. "realm[test].clients[2]".
	Path    string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %v", msg, e.Err)
	}
	return "decode " + msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
