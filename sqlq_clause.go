package sqlq

import (
	"fmt"
	"strings"
)

const (
	ClauseUnset ClauseState = 0
	ClauseSet   ClauseState = 1
)

// State of a clause accumulator. An unset clause is omitted from the output
// entirely, including its keyword.
type ClauseState byte

// Implement `fmt.Stringer` for debug purposes.
func (self ClauseState) String() string {
	if self == ClauseSet {
		return `set`
	}
	return `unset`
}

/*
Predicate clause, used for "where" and "having". Either unset, or set to a
single predicate tree. `.Set` replaces the tree. `.And` and `.Or` combine the
tree with a new predicate, behaving like `.Set` while unset. Combining with the
same kind extends the existing conjunction; combining with the other kind
wraps the existing tree, which then renders in parens:

	var pred Pred
	pred.And(a) // a
	pred.And(b) // a AND b
	pred.Or(c)  // (a AND b) OR c
*/
type Pred struct {
	state ClauseState
	tree  Expr
}

// Returns the current state.
func (self Pred) State() ClauseState { return self.state }

// Returns the current predicate tree, nil when unset.
func (self Pred) Tree() Expr { return self.tree }

// Replaces the tree with the given predicate.
func (self *Pred) Set(val Expr) {
	self.tree = predOf(`setting predicate`, val)
	self.state = ClauseSet
}

// Combines the tree with the given predicate using "AND".
func (self *Pred) And(val Expr) { self.combine(KindAnd, val) }

// Combines the tree with the given predicate using "OR".
func (self *Pred) Or(val Expr) { self.combine(KindOr, val) }

// Resets to the unset state.
func (self *Pred) Clear() { *self = Pred{} }

func (self *Pred) combine(kind ConjKind, val Expr) {
	while := fmt.Sprintf(`combining predicate with %q`, kind.String())
	val = predOf(while, val)

	switch self.state {
	case ClauseUnset:
		self.tree = val
		self.state = ClauseSet

	case ClauseSet:
		if self.tree == nil {
			panic(errState(while, `clause is set but has no predicate`))
		}

		conj, ok := self.tree.(Conj)
		if ok && conj.Kind == kind {
			self.tree = conj.with(val)
		} else {
			self.tree = Conj{kind, []Expr{self.tree, val}}
		}

	default:
		panic(errState(while, `unknown clause state %v`, byte(self.state)))
	}
}

// Appends the keyword and the tree when set.
func (self Pred) appendTo(bui *Bui, keyword string) {
	if self.state == ClauseUnset {
		return
	}
	if self.tree == nil {
		panic(errState(`encoding `+strings.ToLower(keyword), `clause is set but has no predicate`))
	}
	bui.Str(keyword)
	bui.Expr(self.tree)
}

func predOf(while string, val Expr) Expr {
	if isNil(val) {
		panic(errExpr(while, `missing predicate`))
	}
	return val
}

/*
Ordered list of expressions used for columns, "from", "group by" and similar
clauses. `.Set` replaces the entire list, `.Add` appends to it. Never shares
its backing array with the caller.
*/
type ExprList struct{ vals []Expr }

// Returns a copy of the current expressions.
func (self ExprList) Exprs() []Expr { return copyExprs(self.vals) }

// True if there are no expressions.
func (self ExprList) IsEmpty() bool { return len(self.vals) == 0 }

// Number of expressions.
func (self ExprList) Len() int { return len(self.vals) }

// Replaces the list.
func (self *ExprList) Set(vals ...Expr) { self.vals = copyExprs(vals) }

// Appends to the list.
func (self *ExprList) Add(vals ...Expr) {
	if len(vals) == 0 {
		return
	}
	out := make([]Expr, len(self.vals), len(self.vals)+len(vals))
	copy(out, self.vals)
	self.vals = append(out, vals...)
}

func (self ExprList) appendTo(bui *Bui, keyword string) {
	bui.Clause(keyword, self.vals)
}

const (
	JoinDefault JoinKind = `JOIN`
	JoinInner   JoinKind = `INNER JOIN`
	JoinLeft    JoinKind = `LEFT JOIN`
	JoinRight   JoinKind = `RIGHT JOIN`
	JoinFull    JoinKind = `FULL JOIN`
	JoinCross   JoinKind = `CROSS JOIN`
)

// Kind of join, encoded verbatim. The zero value is treated as `JoinDefault`.
type JoinKind string

// True for the known `Join*` constants and the zero value.
func (self JoinKind) IsValid() bool {
	switch self {
	case ``, JoinDefault, JoinInner, JoinLeft, JoinRight, JoinFull, JoinCross:
		return true
	default:
		return false
	}
}

// Parses a join kind, case-insensitively. Empty input is `JoinDefault`.
func ParseJoinKind(src string) (JoinKind, error) {
	norm := JoinKind(strings.ToUpper(strings.Join(strings.Fields(src), ` `)))
	if norm == `` {
		return JoinDefault, nil
	}
	if !strings.HasSuffix(string(norm), `JOIN`) {
		norm += ` JOIN`
	}
	if !norm.IsValid() {
		return ``, Err{
			Code:  ErrCodeInvalidExpression,
			While: `parsing join kind`,
			Cause: fmt.Errorf(`unknown join kind %q`, src),
		}
	}
	return norm, nil
}

func (self JoinKind) norm() JoinKind {
	if self == `` {
		return JoinDefault
	}
	return self
}

// Single join entry: `<kind> <target> ON <cond>`. Cross joins have no
// condition.
type Join struct {
	Kind   JoinKind
	Target Expr
	Cond   Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Join) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(string(self.Kind.norm()))
	bui.Expr(self.Target)
	if self.Cond != nil {
		bui.Str(`ON`)
		bui.Expr(self.Cond)
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Join) String() string { return exprString(self) }

func joinOf(kind JoinKind, target any, cond Expr) Join {
	const while = `making join`
	if !kind.IsValid() {
		panic(errExpr(while, `unknown join kind %q`, string(kind)))
	}

	out := Join{Kind: kind.norm(), Target: identOf(while, target)}
	if out.Kind == JoinCross {
		if !isNil(cond) {
			panic(errExpr(while, `cross join takes no condition`))
		}
		return out
	}

	if isNil(cond) {
		panic(errExpr(while, `missing join condition`))
	}
	out.Cond = cond
	return out
}

// Sequence of joins, encoded space-separated in insertion order.
type Joins []Join

// Implement the `Expr` interface, making this a sub-expression.
func (self Joins) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	for _, val := range self {
		bui.Expr(val)
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Joins) String() string { return exprString(self) }

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "ASC", "DESC".
type Dir byte

// Implement `fmt.Stringer`. Returns the SQL keyword, empty for `DirNone`.
func (self Dir) String() string {
	switch self {
	default:
		return ``
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	}
}

// Parses from a string, which must be empty, "asc" or "desc", in any case.
func (self *Dir) Parse(src string) error {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case ``:
		*self = DirNone
		return nil
	case `asc`:
		*self = DirAsc
		return nil
	case `desc`:
		*self = DirDesc
		return nil
	default:
		return Err{
			Code:  ErrCodeInvalidInput,
			While: `parsing order direction`,
			Cause: fmt.Errorf(`unrecognized direction %q`, src),
		}
	}
}

// Implement `encoding.TextMarshaler`.
func (self Dir) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(self.String())), nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Dir) UnmarshalText(src []byte) error {
	return self.Parse(string(src))
}

// Single "order by" entry: expression and optional direction.
type Ord struct {
	Expr Expr
	Dir  Dir
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Ord) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Expr)
	if self.Dir != DirNone {
		bui.Str(self.Dir.String())
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ord) String() string { return exprString(self) }

func ordOf(val any, dirs []Dir) Ord {
	const while = `making ordering`
	if len(dirs) > 1 {
		panic(errExpr(while, `expected at most one direction, got %v`, len(dirs)))
	}

	out := Ord{Expr: identOf(while, val)}
	if len(dirs) > 0 {
		out.Dir = dirs[0]
	}
	if out.Dir > DirDesc {
		panic(errExpr(while, `unknown direction %v`, byte(out.Dir)))
	}
	return out
}

/*
Short for "orderings". Sequence of "order by" entries. If empty, the resulting
expression is empty. Otherwise it's "ORDER BY" followed by comma-separated
entries.
*/
type Ords []Ord

// Implement the `Expr` interface, making this a sub-expression.
func (self Ords) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	for ind, val := range self {
		if ind == 0 {
			bui.Str(`ORDER BY`)
		} else {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ords) String() string { return exprString(self) }
