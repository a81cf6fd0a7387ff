package sqlq

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown             ErrCode = ""
	ErrCodeInvalidExpression   ErrCode = "InvalidExpression"
	ErrCodeInvalidClauseState  ErrCode = "InvalidClauseState"
	ErrCodeInvalidInput        ErrCode = "InvalidInput"
	ErrCodeUnexpectedParameter ErrCode = "UnexpectedParameter"
	ErrCodeMissingArgument     ErrCode = "MissingArgument"
	ErrCodeOrdinalOutOfBounds  ErrCode = "OrdinalOutOfBounds"
	ErrCodeUnusedArgument      ErrCode = "UnusedArgument"
	ErrCodeInternal            ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqlq.ErrInvalidExpression) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidExpression   = Err{Code: ErrCodeInvalidExpression, Cause: errors.New(`invalid expression`)}
	ErrInvalidClauseState  = Err{Code: ErrCodeInvalidClauseState, Cause: errors.New(`invalid clause state`)}
	ErrInvalidInput        = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrUnexpectedParameter = Err{Code: ErrCodeUnexpectedParameter, Cause: errors.New(`unexpected parameter`)}
	ErrMissingArgument     = Err{Code: ErrCodeMissingArgument, Cause: errors.New(`missing argument`)}
	ErrOrdinalOutOfBounds  = Err{Code: ErrCodeOrdinalOutOfBounds, Cause: errors.New(`ordinal parameter exceeds arguments`)}
	ErrUnusedArgument      = Err{Code: ErrCodeUnusedArgument, Cause: errors.New(`unused argument`)}
	ErrInternal            = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned or panicked by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := `[sqlq]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != `` {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func errExpr(while string, format string, args ...any) Err {
	return Err{
		Code:  ErrCodeInvalidExpression,
		While: while,
		Cause: fmt.Errorf(format, args...),
	}
}

func errState(while string, format string, args ...any) Err {
	return Err{
		Code:  ErrCodeInvalidClauseState,
		While: while,
		Cause: fmt.Errorf(format, args...),
	}
}

/*
Runs the function, converting any panic with an `error` value into a returned
error. Panics with non-error values are re-panicked. Builder methods in this
package panic on programmer errors; use this when assembling statements from
untrusted or dynamic input:

	err := sqlq.Catch(func() {
		stmt.AndWhere(sqlq.Cmp(col, op, val))
	})
*/
func Catch(fun func()) (err error) {
	defer rec(&err)
	if fun != nil {
		fun()
	}
	return
}
