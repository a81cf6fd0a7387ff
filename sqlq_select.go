package sqlq

/*
Mutable SELECT statement. Made by `Select`, mutated in place by its methods,
each returning the same pointer for chaining. Implements `Expr`, so it can be
compiled with `Compile` any number of times, or nested as a subquery. Each
compilation reflects the current state:

	stmt := Select().From(`users`)
	if onlyActive {
		stmt.AndWhere(Field(`active`).Eq(true))
	}
	text, args, err := Compile(stmt)

Not safe for concurrent mutation.
*/
type SelectStmt struct {
	distinct bool
	cols     ExprList
	from     ExprList
	joins    Joins
	where    Pred
	groupBy  ExprList
	having   Pred
	ords     Ords
	limit    *Int
	offset   *Int
}

/*
Makes a SELECT statement with the given columns. Strings are treated as
identifiers. No columns means `*`.

	Select(`id`, Alias(Fn(`COUNT`, `id`), `total`))
	-> `SELECT id, COUNT(id) AS total`
*/
func Select(cols ...any) *SelectStmt {
	return new(SelectStmt).Columns(cols...)
}

// Replaces the column list. No columns means `*`.
func (self *SelectStmt) Columns(cols ...any) *SelectStmt {
	self.cols.Set(identsOf(`setting select columns`, cols)...)
	return self
}

// Appends to the column list.
func (self *SelectStmt) AddColumns(cols ...any) *SelectStmt {
	self.cols.Add(identsOf(`adding select columns`, cols)...)
	return self
}

// Enables "SELECT DISTINCT".
func (self *SelectStmt) Distinct() *SelectStmt {
	self.distinct = true
	return self
}

// Replaces the "from" list: the last call wins.
func (self *SelectStmt) From(tables ...any) *SelectStmt {
	self.from.Set(identsOf(`setting select tables`, tables)...)
	return self
}

// Appends to the "from" list, keeping previous tables.
func (self *SelectStmt) AddFrom(tables ...any) *SelectStmt {
	self.from.Add(identsOf(`adding select tables`, tables)...)
	return self
}

// Appends a plain "JOIN".
func (self *SelectStmt) Join(target any, cond Expr) *SelectStmt {
	return self.JoinKind(JoinDefault, target, cond)
}

// Appends an "INNER JOIN".
func (self *SelectStmt) InnerJoin(target any, cond Expr) *SelectStmt {
	return self.JoinKind(JoinInner, target, cond)
}

// Appends a "LEFT JOIN".
func (self *SelectStmt) LeftJoin(target any, cond Expr) *SelectStmt {
	return self.JoinKind(JoinLeft, target, cond)
}

// Appends a "RIGHT JOIN".
func (self *SelectStmt) RightJoin(target any, cond Expr) *SelectStmt {
	return self.JoinKind(JoinRight, target, cond)
}

// Appends a "FULL JOIN".
func (self *SelectStmt) FullJoin(target any, cond Expr) *SelectStmt {
	return self.JoinKind(JoinFull, target, cond)
}

// Appends a "CROSS JOIN", which has no condition.
func (self *SelectStmt) CrossJoin(target any) *SelectStmt {
	return self.JoinKind(JoinCross, target, nil)
}

/*
Appends a join of the given kind. Joins are encoded in insertion order and never
reordered. Panics with `ErrInvalidExpression` on an unknown kind, a missing
target, or a missing condition for non-cross joins.
*/
func (self *SelectStmt) JoinKind(kind JoinKind, target any, cond Expr) *SelectStmt {
	val := joinOf(kind, target, cond)
	joins := make(Joins, len(self.joins), len(self.joins)+1)
	copy(joins, self.joins)
	self.joins = append(joins, val)
	return self
}

// Replaces the "where" tree with the given predicate.
func (self *SelectStmt) Where(val Expr) *SelectStmt {
	self.where.Set(val)
	return self
}

// Combines the predicate into the "where" tree with "AND".
func (self *SelectStmt) AndWhere(val Expr) *SelectStmt {
	self.where.And(val)
	return self
}

// Combines the predicate into the "where" tree with "OR".
func (self *SelectStmt) OrWhere(val Expr) *SelectStmt {
	self.where.Or(val)
	return self
}

// Appends to the "group by" list.
func (self *SelectStmt) GroupBy(cols ...any) *SelectStmt {
	self.groupBy.Add(identsOf(`adding group by`, cols)...)
	return self
}

// Replaces the "having" tree with the given predicate.
func (self *SelectStmt) Having(val Expr) *SelectStmt {
	self.having.Set(val)
	return self
}

// Combines the predicate into the "having" tree with "AND".
func (self *SelectStmt) AndHaving(val Expr) *SelectStmt {
	self.having.And(val)
	return self
}

// Combines the predicate into the "having" tree with "OR".
func (self *SelectStmt) OrHaving(val Expr) *SelectStmt {
	self.having.Or(val)
	return self
}

/*
Appends an "order by" entry. The direction is optional; without it, no keyword
is encoded:

	OrderBy(`u.username`).OrderBy(`total`, DirDesc)
	-> `ORDER BY u.username, total DESC`
*/
func (self *SelectStmt) OrderBy(col any, dir ...Dir) *SelectStmt {
	val := ordOf(col, dir)
	ords := make(Ords, len(self.ords), len(self.ords)+1)
	copy(ords, self.ords)
	self.ords = append(ords, val)
	return self
}

// Sets "LIMIT", encoded as an inline integer. Negative input panics.
func (self *SelectStmt) Limit(val int) *SelectStmt {
	self.limit = intOf(`setting limit`, val)
	return self
}

// Sets "OFFSET", encoded as an inline integer. Negative input panics.
func (self *SelectStmt) Offset(val int) *SelectStmt {
	self.offset = intOf(`setting offset`, val)
	return self
}

/*
Returns an independent copy. Mutating the copy never affects the original and
vice versa. Useful for deriving several statements from a common base.
*/
func (self *SelectStmt) Clone() *SelectStmt {
	out := *self
	out.joins = append(Joins(nil), self.joins...)
	out.ords = append(Ords(nil), self.ords...)
	return &out
}

// Implement the `Expr` interface, making this a sub-expression.
func (self *SelectStmt) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}

	if self.distinct {
		bui.Str(`SELECT DISTINCT`)
	} else {
		bui.Str(`SELECT`)
	}

	if self.cols.IsEmpty() {
		bui.Expr(Star{})
	} else {
		bui.List(self.cols.vals)
	}

	self.from.appendTo(&bui, `FROM`)
	if len(self.joins) > 0 {
		bui.Expr(self.joins)
	}
	self.where.appendTo(&bui, `WHERE`)
	self.groupBy.appendTo(&bui, `GROUP BY`)
	self.having.appendTo(&bui, `HAVING`)
	if len(self.ords) > 0 {
		bui.Expr(self.ords)
	}

	if self.limit != nil {
		bui.Str(`LIMIT`)
		bui.Expr(*self.limit)
	}
	if self.offset != nil {
		bui.Str(`OFFSET`)
		bui.Expr(*self.offset)
	}
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self *SelectStmt) String() string { return exprString(self) }

func intOf(while string, val int) *Int {
	if val < 0 {
		panic(errExpr(while, `expected non-negative integer, got %v`, val))
	}
	out := Int(val)
	return &out
}
