package sqlq

import (
	r "reflect"
	"strconv"
	"strings"
)

/*
Literal value. Always encoded as a single placeholder `?`, appending the value
to the arguments. The value is passed to the database driver as-is.
*/
type Lit struct{ Val any }

// Implement the `Expr` interface, making this a sub-expression.
func (self Lit) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Arg(self.Val)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Lit) String() string { return exprString(self) }

/*
Column, table or other SQL identifier, encoded verbatim. Identifiers are never
quoted or escaped: dialect-specific quoting is up to the caller. Strings passed
where an expression is expected are converted to `Ident`.
*/
type Ident string

// Implement the `Expr` interface, making this a sub-expression.
func (self Ident) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendMaybeSpaced(text, string(self)), args
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ident) String() string { return string(self) }

// Represents the "select all" wildcard `*`.
type Star struct{}

// Implement the `Expr` interface, making this a sub-expression.
func (self Star) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendMaybeSpaced(text, `*`), args
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Star) String() string { return `*` }

/*
An expression that interpolates itself as text representing a literal integer,
instead of adding a placeholder and an argument. Used for "limit" and "offset".
*/
type Int int

// Implement the `Expr` interface, making this a sub-expression.
func (self Int) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendMaybeSpaced(text, self.String()), args
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Int) String() string { return strconv.Itoa(int(self)) }

/*
Arbitrary expression wrapped in parens. If the inner expression is nil, this is
represented as "()".
*/
type Parens [1]Expr

// Implement the `Expr` interface, making this a sub-expression.
func (self Parens) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(`(`)
	bui.Expr(self[0])
	bui.Str(`)`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Parens) String() string { return exprString(self) }

/*
Expression with an alias: `<expr> AS <alias>`. Use it where the alias is
defined: in the column list, "from" and "join". Elsewhere, refer to the alias
by name, for example via `.Ref`. Aliases are never resolved by this package.
*/
type Aliased struct {
	Expr  Expr
	Alias string
}

/*
Shortcut for making `Aliased`. A string input is treated as an identifier:

	Alias(`users`, `u`)
	-> `users AS u`

	Alias(Fn(`SUM`, `salary`), `total`)
	-> `SUM(salary) AS total`

Panics with `ErrInvalidExpression` if the expression or the alias is missing.
*/
func Alias(val any, alias string) Aliased {
	const while = `making alias`
	expr := identOf(while, val)
	if strings.TrimSpace(alias) == `` {
		panic(errExpr(while, `missing alias for %v`, exprString(expr)))
	}
	return Aliased{expr, alias}
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Aliased) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Expr)
	bui.Str(`AS`)
	bui.Str(self.Alias)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Aliased) String() string { return exprString(self) }

// Returns the alias as an identifier, for referencing it after definition.
func (self Aliased) Ref() Ident { return Ident(self.Alias) }

// Function call: `NAME(arg, arg, ...)`.
type Call struct {
	Name string
	Args []Expr
}

/*
Shortcut for making `Call`. String arguments are treated as identifiers,
expressions are used as-is, other values become placeholders:

	Fn(`COUNT`, `id`)
	-> `COUNT(id)`

	Fn(`COALESCE`, `nickname`, `anonymous`)
	-> `COALESCE(nickname, anonymous)`

	Fn(`ROUND`, `price`, 2)
	-> `ROUND(price, ?)` [2]

Panics with `ErrInvalidExpression` if the name is empty or an argument is nil.
*/
func Fn(name string, args ...any) Call {
	const while = `making function call`
	if strings.TrimSpace(name) == `` {
		panic(errExpr(while, `missing function name`))
	}

	var exprs []Expr
	if len(args) > 0 {
		exprs = make([]Expr, 0, len(args))
		for _, arg := range args {
			exprs = append(exprs, argOf(while, arg))
		}
	}
	return Call{name, exprs}
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Call) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(self.Name)
	bui.Write(`(`)
	bui.List(self.Args)
	bui.Str(`)`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Call) String() string { return exprString(self) }

// Comma-separated expressions in parens: `(a, b, c)`. Used by "in".
type List []Expr

// Implement the `Expr` interface, making this a sub-expression.
func (self List) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(`(`)
	bui.List(self)
	bui.Str(`)`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self List) String() string { return exprString(self) }

// Lower and upper bound for "between": `lo AND hi`.
type Range struct {
	Lo Expr
	Hi Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Range) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Lo)
	bui.Str(`AND`)
	bui.Expr(self.Hi)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Range) String() string { return exprString(self) }

/*
Comparison predicate: `left OP right`. For the unary operators `OpIsNull` and
`OpIsNotNull`, `.Right` is nil and omitted. Use `Cmp`, `Field` or `On` to
build one: they validate the operands.
*/
type Comparison struct {
	Left  Expr
	Op    Op
	Right Expr
}

/*
Makes a validated `Comparison`. The left operand is treated as an identifier
when it's a string. The right operand is treated as a value: non-expressions
become placeholders. For `OpIn` and `OpNotIn`, the right operand may be a
slice, which becomes a `List` of placeholders, or an expression such as a
subquery. For `OpBetween` and `OpNotBetween`, it must be a `Range` or a slice
of two elements.

Panics with `ErrInvalidExpression` on a missing operand or an unknown operator.
*/
func Cmp(left any, op Op, right any) Comparison {
	const while = `making comparison`
	if !op.IsValid() {
		panic(errExpr(while, `unknown operator %q`, string(op)))
	}

	out := Comparison{Left: identOf(while, left), Op: op}

	switch op {
	case OpIsNull, OpIsNotNull:
		if right != nil {
			panic(errExpr(while, `operator %q takes no right operand`, string(op)))
		}

	case OpIn, OpNotIn:
		out.Right = listOf(while, right)

	case OpBetween, OpNotBetween:
		out.Right = rangeOf(while, right)

	default:
		if right == nil {
			panic(errExpr(while, `missing right operand for %q`, string(op)))
		}
		out.Right = valueOf(while, right)
	}
	return out
}

/*
Equality condition between two identifiers, typically for "join":

	On(`u.role_id`, `r.id`)
	-> `u.role_id = r.id`
*/
func On(left, right any) Comparison {
	const while = `making join condition`
	return Comparison{identOf(while, left), OpEq, identOf(while, right)}
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Comparison) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Left)
	bui.Str(string(self.Op))
	bui.Expr(self.Right)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Comparison) String() string { return exprString(self) }

const (
	KindAnd ConjKind = 0
	KindOr  ConjKind = 1
)

// Kind of boolean conjunction: "and" or "or".
type ConjKind byte

// Implement `fmt.Stringer`. Returns the SQL keyword.
func (self ConjKind) String() string {
	if self == KindOr {
		return `OR`
	}
	return `AND`
}

/*
Boolean conjunction or disjunction of predicates, joined with "AND" or "OR"
left to right. A child that is itself a `Conj` of the other kind, with more
than one member, is parenthesized; a child of the same kind is encoded inline.
*/
type Conj struct {
	Kind  ConjKind
	Exprs []Expr
}

// Makes an "and" conjunction. Panics if empty or if any member is nil.
func And(vals ...Expr) Conj { return conjOf(`making "and" conjunction`, KindAnd, vals) }

// Makes an "or" disjunction. Panics if empty or if any member is nil.
func Or(vals ...Expr) Conj { return conjOf(`making "or" disjunction`, KindOr, vals) }

// Implement the `Expr` interface, making this a sub-expression.
func (self Conj) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	for ind, val := range self.Exprs {
		if ind > 0 {
			bui.Str(self.Kind.String())
		}
		if self.needsParens(val) {
			bui.SubExpr(val)
		} else {
			bui.Expr(val)
		}
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Conj) String() string { return exprString(self) }

func (self Conj) needsParens(val Expr) bool {
	other, ok := val.(Conj)
	return ok && other.Kind != self.Kind && len(other.Exprs) > 1
}

// Returns a copy with the given expression appended. Never mutates the
// receiver's backing array, which may be shared with the caller.
func (self Conj) with(val Expr) Conj {
	exprs := make([]Expr, len(self.Exprs), len(self.Exprs)+1)
	copy(exprs, self.Exprs)
	return Conj{self.Kind, append(exprs, val)}
}

func conjOf(while string, kind ConjKind, vals []Expr) Conj {
	if len(vals) == 0 {
		panic(errExpr(while, `expected at least one predicate`))
	}
	for ind, val := range vals {
		if isNil(val) {
			panic(errExpr(while, `missing predicate at index %v`, ind))
		}
	}
	return Conj{kind, copyExprs(vals)}
}

// Like `identOf`, but other non-expression values become placeholders.
func argOf(while string, val any) Expr {
	switch val := val.(type) {
	case nil:
		panic(errExpr(while, `missing operand`))
	case string, Expr:
		return identOf(while, val)
	default:
		return Lit{val}
	}
}

func listOf(while string, val any) Expr {
	switch val := val.(type) {
	case nil:
		panic(errExpr(while, `missing value list`))
	case List:
		if len(val) == 0 {
			panic(errExpr(while, `empty value list`))
		}
		return val
	case Parens:
		return val
	case Expr:
		if isNil(val) {
			panic(errExpr(while, `missing value list`))
		}
		return Parens{val}
	}

	rval := r.ValueOf(val)
	if rval.Kind() != r.Slice && rval.Kind() != r.Array || rval.Type().Elem().Kind() == r.Uint8 {
		panic(errExpr(while, `expected list, slice or subquery, got %T`, val))
	}
	if rval.Len() == 0 {
		panic(errExpr(while, `empty value list`))
	}

	out := make(List, 0, rval.Len())
	for ind := 0; ind < rval.Len(); ind++ {
		out = append(out, valueOf(while, rval.Index(ind).Interface()))
	}
	return out
}

func rangeOf(while string, val any) Expr {
	switch val := val.(type) {
	case Range:
		if isNil(val.Lo) || isNil(val.Hi) {
			panic(errExpr(while, `missing range bound`))
		}
		return val
	case []any:
		if len(val) != 2 {
			panic(errExpr(while, `expected 2 range bounds, got %v`, len(val)))
		}
		return Range{valueOf(while, val[0]), valueOf(while, val[1])}
	default:
		panic(errExpr(while, `expected range, got %T`, val))
	}
}
