package sqlq

/*
Short for "expression". Defines an arbitrary SQL expression. The method appends
SQL text and the arguments bound to its placeholders. In both the input and
output, the arguments must correspond to the `?` placeholders in the text,
left to right.

Construction helpers in this package panic on malformed input, so an `Expr`
built by them is always structurally valid. Rendering may still panic for
user-defined implementations; `Compile` converts such panics to errors.
*/
type Expr interface {
	AppendExpr([]byte, []any) ([]byte, []any)
}

/*
Optional extension for `Expr`, implemented by statement types. Called by
`Compile` before rendering, to reject statements that can't produce valid SQL,
such as an INSERT without rows. Never inspects the meaning of references.
*/
type Validator interface {
	Validate() error
}
