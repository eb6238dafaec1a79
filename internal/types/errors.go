package types

import (
	"errors"
	"fmt"
)

// InvalidParameterError reports a user-supplied value outside its valid
// range. The dashboard surfaces these inline and skips the computation for
// the offending control.
type InvalidParameterError struct {
	Param  string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%s: %s", e.Param, e.Value, e.Reason)
}

// NewInvalidParameter builds an InvalidParameterError with a formatted value.
func NewInvalidParameter(param string, value interface{}, reason string) error {
	return &InvalidParameterError{
		Param:  param,
		Value:  fmt.Sprintf("%v", value),
		Reason: reason,
	}
}

// IsInvalidParameter reports whether err is (or wraps) an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}

// MalformedInputError reports an unreadable dataset: missing required
// columns or rows that do not parse. Line is 1-based and 0 when the problem
// is not tied to a specific row.
type MalformedInputError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Reason)
}

// IsMalformedInput reports whether err is (or wraps) a MalformedInputError.
func IsMalformedInput(err error) bool {
	var mie *MalformedInputError
	return errors.As(err, &mie)
}
