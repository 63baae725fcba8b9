package api

import (
	"errors"
	"fmt"
)

var (
	ErrVartypeInference   = errors.New("can not infer vartype")
	ErrUnsupportedVartype = errors.New("unsupported vartype")
	ErrVartypeMismatch    = errors.New("vartype mismatch")
)

// InternalError reports a violated invariant of the reduction. It is never
// caused by user input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s, please file a bug report", e.Msg)
}

func NewInternalError(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
