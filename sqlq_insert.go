package sqlq

/*
Mutable INSERT statement. Made by `InsertInto`. Each call to `.Values` or
`.ValuesOf` adds one row:

	InsertInto(`users`).Columns(`name`, `email`).Values(`alice`, `a@x`)
	-> `INSERT INTO users (name, email) VALUES (?, ?)` [alice a@x]

Every row must have as many values as there are columns. Not safe for
concurrent mutation.
*/
type InsertStmt struct {
	table     Expr
	cols      ExprList
	rows      []List
	returning ExprList
}

// Makes an INSERT statement for the given table.
func InsertInto(table any) *InsertStmt {
	return &InsertStmt{table: identOf(`making insert`, table)}
}

/*
Replaces the column list. Panics with `ErrInvalidClauseState` if rows were
already added with a different number of values.
*/
func (self *InsertStmt) Columns(cols ...any) *InsertStmt {
	const while = `setting insert columns`
	exprs := identsOf(while, cols)
	if len(self.rows) > 0 && len(self.rows[0]) != len(exprs) {
		panic(errState(while, `existing rows have %v values, got %v columns`, len(self.rows[0]), len(exprs)))
	}
	self.cols.Set(exprs...)
	return self
}

/*
Appends one row. Values that aren't expressions become placeholders. Panics
with `ErrInvalidClauseState` if the number of values doesn't match the column
list, or with `ErrInvalidExpression` if the row is empty.
*/
func (self *InsertStmt) Values(vals ...any) *InsertStmt {
	const while = `adding insert row`
	if len(vals) == 0 {
		panic(errExpr(while, `empty row`))
	}

	row := make(List, 0, len(vals))
	for _, val := range vals {
		row = append(row, valueOf(while, val))
	}
	self.addRow(while, row)
	return self
}

/*
Appends one row taken from the "db"-tagged fields of a struct. When the column
list is empty, it's set from the field names. Otherwise the field names must
match the column list exactly, in order; a mismatch panics with
`ErrInvalidClauseState`.
*/
func (self *InsertStmt) ValuesOf(src any) *InsertStmt {
	const while = `adding insert row from struct`
	cols, row := structColsVals(while, src)

	if self.cols.IsEmpty() && len(self.rows) == 0 {
		self.cols.Set(cols...)
	} else if !sameIdents(self.cols.vals, cols) {
		panic(errState(while, `struct fields %v don't match columns %v`, List(cols), List(self.cols.vals)))
	}

	self.addRow(while, row)
	return self
}

// Appends to the "returning" list.
func (self *InsertStmt) Returning(cols ...any) *InsertStmt {
	self.returning.Add(identsOf(`adding insert returning`, cols)...)
	return self
}

func (self *InsertStmt) addRow(while string, row List) {
	if !self.cols.IsEmpty() && self.cols.Len() != len(row) {
		panic(errState(while, `expected %v values, got %v`, self.cols.Len(), len(row)))
	}
	if len(self.rows) > 0 && len(self.rows[0]) != len(row) {
		panic(errState(while, `expected %v values like previous rows, got %v`, len(self.rows[0]), len(row)))
	}

	rows := make([]List, len(self.rows), len(self.rows)+1)
	copy(rows, self.rows)
	self.rows = append(rows, row)
}

// Implement `Validator`. An insert requires a table and at least one row.
func (self *InsertStmt) Validate() error {
	const while = `validating insert`
	if self.table == nil {
		return errState(while, `missing table`)
	}
	if len(self.rows) == 0 {
		return errState(while, `missing rows`)
	}
	return nil
}

// Implement the `Expr` interface, making this a sub-expression.
func (self *InsertStmt) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(`INSERT INTO`)
	bui.Expr(self.table)

	if !self.cols.IsEmpty() {
		bui.Expr(List(self.cols.vals))
	}

	for ind, row := range self.rows {
		if ind == 0 {
			bui.Str(`VALUES`)
		} else {
			bui.Str(`,`)
		}
		bui.Expr(row)
	}

	self.returning.appendTo(&bui, `RETURNING`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self *InsertStmt) String() string { return exprString(self) }

func sameIdents(one, two []Expr) bool {
	if len(one) != len(two) {
		return false
	}
	for ind := range one {
		if exprString(one[ind]) != exprString(two[ind]) {
			return false
		}
	}
	return true
}
