package sqlq

import (
	"fmt"
	r "reflect"
	"strings"
)

// Comparison operator, encoded verbatim between the operands.
type Op string

const (
	OpEq         Op = `=`
	OpNeq        Op = `<>`
	OpLt         Op = `<`
	OpLte        Op = `<=`
	OpGt         Op = `>`
	OpGte        Op = `>=`
	OpLike       Op = `LIKE`
	OpNotLike    Op = `NOT LIKE`
	OpIn         Op = `IN`
	OpNotIn      Op = `NOT IN`
	OpBetween    Op = `BETWEEN`
	OpNotBetween Op = `NOT BETWEEN`
	OpIsNull     Op = `IS NULL`
	OpIsNotNull  Op = `IS NOT NULL`
)

var ops = []Op{
	OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpLike, OpNotLike,
	OpIn, OpNotIn, OpBetween, OpNotBetween, OpIsNull, OpIsNotNull,
}

// True if the operator is one of the known `Op*` constants.
func (self Op) IsValid() bool {
	for _, val := range ops {
		if val == self {
			return true
		}
	}
	return false
}

// True for operators without a right operand.
func (self Op) IsUnary() bool { return self == OpIsNull || self == OpIsNotNull }

/*
Parses an operator from its SQL text. Case-insensitive and tolerant of extra
whitespace between words. Accepts "!=" as a synonym for "<>".
*/
func ParseOp(src string) (Op, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(src), ` `))
	if norm == `!=` {
		return OpNeq, nil
	}
	op := Op(norm)
	if !op.IsValid() {
		return ``, Err{
			Code:  ErrCodeInvalidExpression,
			While: `parsing comparison operator`,
			Cause: fmt.Errorf(`unknown operator %q`, src),
		}
	}
	return op, nil
}

/*
Entry point for building comparisons against a column or expression:

	Field(`id`).Eq(1)
	-> `id = ?` [1]

	Field(Fn(`SUM`, `salary`)).Gt(5000)
	-> `SUM(salary) > ?` [5000]

Strings are treated as identifiers. Panics with `ErrInvalidExpression` if the
input is nil or empty.
*/
func Field(val any) FieldRef {
	return FieldRef{identOf(`making field`, val)}
}

// Comparison builder returned by `Field`. Every method returns a validated
// `Comparison`.
type FieldRef struct{ Expr Expr }

// Implement the `Expr` interface, making this a sub-expression.
func (self FieldRef) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Expr)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self FieldRef) String() string { return exprString(self) }

func (self FieldRef) Eq(val any) Comparison        { return Cmp(self.Expr, OpEq, val) }
func (self FieldRef) Neq(val any) Comparison       { return Cmp(self.Expr, OpNeq, val) }
func (self FieldRef) Lt(val any) Comparison        { return Cmp(self.Expr, OpLt, val) }
func (self FieldRef) Lte(val any) Comparison       { return Cmp(self.Expr, OpLte, val) }
func (self FieldRef) Gt(val any) Comparison        { return Cmp(self.Expr, OpGt, val) }
func (self FieldRef) Gte(val any) Comparison       { return Cmp(self.Expr, OpGte, val) }
func (self FieldRef) Like(val any) Comparison      { return Cmp(self.Expr, OpLike, val) }
func (self FieldRef) NotLike(val any) Comparison   { return Cmp(self.Expr, OpNotLike, val) }
func (self FieldRef) IsNull() Comparison           { return Cmp(self.Expr, OpIsNull, nil) }
func (self FieldRef) IsNotNull() Comparison        { return Cmp(self.Expr, OpIsNotNull, nil) }
func (self FieldRef) Op(op Op, val any) Comparison { return Cmp(self.Expr, op, val) }

/*
Membership test. Multiple values become a list of placeholders. A single
expression, such as a `*SelectStmt`, is used as a parenthesized subquery:

	Field(`id`).In(1, 2, 3)
	-> `id IN (?, ?, ?)` [1 2 3]

	Field(`id`).In(Select(`user_id`).From(`admins`))
	-> `id IN (SELECT user_id FROM admins)`
*/
func (self FieldRef) In(vals ...any) Comparison { return Cmp(self.Expr, OpIn, inArg(vals)) }

// Negated variant of `.In`.
func (self FieldRef) NotIn(vals ...any) Comparison { return Cmp(self.Expr, OpNotIn, inArg(vals)) }

// Range test: `x BETWEEN ? AND ?`.
func (self FieldRef) Between(lo, hi any) Comparison {
	return Cmp(self.Expr, OpBetween, []any{lo, hi})
}

// Negated variant of `.Between`.
func (self FieldRef) NotBetween(lo, hi any) Comparison {
	return Cmp(self.Expr, OpNotBetween, []any{lo, hi})
}

// A single expression or slice is used as the whole list.
func inArg(vals []any) any {
	if len(vals) != 1 {
		return vals
	}

	impl, _ := vals[0].(Expr)
	if impl != nil {
		return impl
	}

	rval := r.ValueOf(vals[0])
	if rval.Kind() == r.Slice && rval.Type().Elem().Kind() != r.Uint8 {
		return vals[0]
	}
	return vals
}
