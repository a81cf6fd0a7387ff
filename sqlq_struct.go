package sqlq

import (
	"fmt"
	r "reflect"

	"github.com/mitranim/refut"
)

const TagNameDb = `db`

/*
Column list derived from the "db" tags of a struct type. Encoded as
comma-separated identifiers, suitable for `Select`:

	type User struct {
		Id   int64  `db:"id"`
		Name string `db:"name"`
	}

	Select(Cols(User{})).From(`users`)
	-> `SELECT id, name FROM users`

Accepts a struct, a struct pointer, or a slice of either; nil pointers and
slices are fine as long as they carry the type. Fields without a "db" tag or
tagged "-" are skipped. Any other input panics with `ErrInvalidInput`.
*/
func Cols(typ any) StructCols {
	return StructCols(structTypeCols(`making struct columns`, r.TypeOf(typ)))
}

// Column list made by `Cols`: comma-separated, without parens.
type StructCols []Expr

// Implement the `Expr` interface, making this a sub-expression.
func (self StructCols) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	bui.List(self)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self StructCols) String() string { return exprString(self) }

// Returns the DB column name from the "db" tag, empty if missing or "-".
func FieldDbName(field r.StructField) string {
	return refut.TagIdent(field.Tag.Get(TagNameDb))
}

func structTypeCols(while string, typ r.Type) []Expr {
	if typ == nil {
		panic(errInput(while, `expected struct type, got nil`))
	}

	rtype := refut.RtypeDeref(typ)
	if rtype != nil && (rtype.Kind() == r.Slice || rtype.Kind() == r.Array) {
		rtype = refut.RtypeDeref(rtype.Elem())
	}
	if rtype == nil || rtype.Kind() != r.Struct {
		panic(errInput(while, `expected struct type, got %v`, typ))
	}

	var out []Expr
	err := refut.TraverseStructRtype(rtype, func(sfield r.StructField, _ []int) error {
		name := FieldDbName(sfield)
		if name != `` && sfield.IsExported() {
			out = append(out, Ident(name))
		}
		return nil
	})
	if err != nil {
		panic(err)
	}

	if len(out) == 0 {
		panic(errInput(while, `struct type %v has no "db" fields`, rtype))
	}
	return out
}

/*
Returns the columns and values of the "db"-tagged fields of a struct value.
Field values implementing `Expr` are used as-is; other values become
placeholders.
*/
func structColsVals(while string, src any) (cols []Expr, vals []Expr) {
	rval := r.ValueOf(src)
	if !rval.IsValid() {
		panic(errInput(while, `expected struct, got nil`))
	}

	rtype := refut.RtypeDeref(rval.Type())
	if rtype.Kind() != r.Struct {
		panic(errInput(while, `expected struct, got %q`, rtype))
	}
	if refut.IsRvalNil(rval) {
		panic(errInput(while, `expected struct, got nil %v`, rval.Type()))
	}
	for rval.Kind() == r.Pointer {
		rval = rval.Elem()
	}

	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		name := FieldDbName(sfield)
		if name == `` || !sfield.IsExported() {
			return nil
		}
		cols = append(cols, Ident(name))
		vals = append(vals, valueOf(while, rval.Interface()))
		return nil
	})
	if err != nil {
		panic(err)
	}

	if len(cols) == 0 {
		panic(errInput(while, `struct type %v has no "db" fields`, rtype))
	}
	return
}

func errInput(while string, format string, args ...any) Err {
	return Err{
		Code:  ErrCodeInvalidInput,
		While: while,
		Cause: fmt.Errorf(format, args...),
	}
}
