package sqlq

/*
Mutable DELETE statement. Made by `DeleteFrom`:

	DeleteFrom(`sessions`).Where(Field(`expires_at`).Lt(now))
	-> `DELETE FROM sessions WHERE expires_at < ?` [now]

A delete without "where" removes every row; that's allowed, as in SQL.
*/
type DeleteStmt struct {
	table     Expr
	where     Pred
	returning ExprList
}

// Makes a DELETE statement for the given table.
func DeleteFrom(table any) *DeleteStmt {
	return &DeleteStmt{table: identOf(`making delete`, table)}
}

// Replaces the "where" tree with the given predicate.
func (self *DeleteStmt) Where(val Expr) *DeleteStmt {
	self.where.Set(val)
	return self
}

// Combines the predicate into the "where" tree with "AND".
func (self *DeleteStmt) AndWhere(val Expr) *DeleteStmt {
	self.where.And(val)
	return self
}

// Combines the predicate into the "where" tree with "OR".
func (self *DeleteStmt) OrWhere(val Expr) *DeleteStmt {
	self.where.Or(val)
	return self
}

// Appends to the "returning" list.
func (self *DeleteStmt) Returning(cols ...any) *DeleteStmt {
	self.returning.Add(identsOf(`adding delete returning`, cols)...)
	return self
}

// Implement `Validator`. A delete requires a table.
func (self *DeleteStmt) Validate() error {
	if self.table == nil {
		return errState(`validating delete`, `missing table`)
	}
	return nil
}

// Implement the `Expr` interface, making this a sub-expression.
func (self *DeleteStmt) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.Str(`DELETE FROM`)
	bui.Expr(self.table)
	self.where.appendTo(&bui, `WHERE`)
	self.returning.appendTo(&bui, `RETURNING`)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self *DeleteStmt) String() string { return exprString(self) }
