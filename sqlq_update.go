package sqlq

/*
Mutable UPDATE statement. Made by `Update`. Assignments are encoded in
insertion order:

	Update(`users`).Set(`name`, `bob`).Where(Field(`id`).Eq(10))
	-> `UPDATE users SET name = ? WHERE id = ?` [bob 10]

Not safe for concurrent mutation.
*/
type UpdateStmt struct {
	table     Expr
	sets      []Assign
	where     Pred
	returning ExprList
}

// Makes an UPDATE statement for the given table.
func Update(table any) *UpdateStmt {
	return &UpdateStmt{table: identOf(`making update`, table)}
}

/*
Appends an assignment. The column is treated as an identifier when it's a
string; the value becomes a placeholder unless it's an expression.
*/
func (self *UpdateStmt) Set(col any, val any) *UpdateStmt {
	const while = `adding update assignment`
	self.addSets(Assign{identOf(while, col), valueOf(while, val)})
	return self
}

// Appends one assignment per "db"-tagged field of the struct.
func (self *UpdateStmt) SetStruct(src any) *UpdateStmt {
	const while = `adding update assignments from struct`
	cols, vals := structColsVals(while, src)

	sets := make([]Assign, 0, len(cols))
	for ind := range cols {
		sets = append(sets, Assign{cols[ind], vals[ind]})
	}
	self.addSets(sets...)
	return self
}

// Replaces the "where" tree with the given predicate.
func (self *UpdateStmt) Where(val Expr) *UpdateStmt {
	self.where.Set(val)
	return self
}

// Combines the predicate into the "where" tree with "AND".
func (self *UpdateStmt) AndWhere(val Expr) *UpdateStmt {
	self.where.And(val)
	return self
}

// Combines the predicate into the "where" tree with "OR".
func (self *UpdateStmt) OrWhere(val Expr) *UpdateStmt {
	self.where.Or(val)
	return self
}

// Appends to the "returning" list.
func (self *UpdateStmt) Returning(cols ...any) *UpdateStmt {
	self.returning.Add(identsOf(`adding update returning`, cols)...)
	return self
}

func (self *UpdateStmt) addSets(vals ...Assign) {
	sets := make([]Assign, len(self.sets), len(self.sets)+len(vals))
	copy(sets, self.sets)
	self.sets = append(sets, vals...)
}

// Implement `Validator`. An update requires a table and at least one
// assignment.
func (self *UpdateStmt) Validate() error {
	const while = `validating update`
	if self.table == nil {
		return errState(while, `missing table`)
	}
	if len(self.sets) == 0 {
		return errState(while, `missing assignments`)
	}
	return nil
}

// Implement the `Expr` interface, making this a sub-expression.
func (self *UpdateStmt) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(`UPDATE`)
	bui.Expr(self.table)

	for ind, val := range self.sets {
		if ind == 0 {
			bui.Str(`SET`)
		} else {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}

	self.where.appendTo(&bui, `WHERE`)
	self.returning.appendTo(&bui, `RETURNING`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self *UpdateStmt) String() string { return exprString(self) }

// Single assignment in an "update ... set" clause: `col = val`.
type Assign struct {
	Lhs Expr
	Rhs Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Assign) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Expr(self.Lhs)
	bui.Str(`=`)
	bui.Expr(self.Rhs)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Assign) String() string { return exprString(self) }
