package sqlq

import (
	r "reflect"
	"testing"
)

func TestCols(t *testing.T) {
	test := func(exp string, typ any) {
		t.Helper()
		testExpr(t, rei(exp), Cols(typ))
	}

	const person = `id, name, email`
	test(person, Person{})
	test(person, &Person{})
	test(person, (*Person)(nil))
	test(person, []Person{})
	test(person, []*Person{})
	test(person, &[]Person{})
	test(person, &[]*Person{})
	test(person, [2]Person{})

	test(`id, name, email, dept`, Employee{})
	test(`id, name, email, dept`, []*Employee(nil))

	t.Run(`in select`, func(t *testing.T) {
		eq(t, rei(`SELECT id, name, email FROM people`), compiled(t, Select(Cols(Person{})).From(`people`)))
		eq(t,
			rei(`SELECT id, name, email, COUNT(*) AS n FROM people GROUP BY id`),
			compiled(t, Select(Cols(Person{}), Alias(Fn(`COUNT`, Star{}), `n`)).From(`people`).GroupBy(`id`)),
		)
	})

	t.Run(`invalid`, func(t *testing.T) {
		panics(t, ErrInvalidInput, `expected struct type, got nil`, func() { Cols(nil) })
		panics(t, ErrInvalidInput, `expected struct type`, func() { Cols(10) })
		panics(t, ErrInvalidInput, `expected struct type`, func() { Cols([]string{}) })
		panics(t, ErrInvalidInput, `has no "db" fields`, func() { Cols(Untagged{}) })
		panics(t, ErrInvalidInput, `has no "db" fields`, func() { Cols(struct{}{}) })
	})
}

func TestFieldDbName(t *testing.T) {
	typ := r.TypeOf(Person{})

	test := func(exp string, name string) {
		t.Helper()
		field, ok := typ.FieldByName(name)
		eq(t, true, ok)
		eq(t, exp, FieldDbName(field))
	}

	test(`id`, `Id`)
	test(`email`, `Email`)
	test(``, `Notes`)
	test(``, `Skip`)
}

func Test_structColsVals(t *testing.T) {
	cols, vals := structColsVals(`testing`, &Person{Id: 1, Name: `a`, Email: `b`})
	eq(t, []Expr{Ident(`id`), Ident(`name`), Ident(`email`)}, cols)
	eq(t, []Expr{Lit{int64(1)}, Lit{`a`}, Lit{`b`}}, vals)

	type WithExpr struct {
		Name string `db:"name"`
		At   Expr   `db:"at"`
	}

	cols, vals = structColsVals(`testing`, WithExpr{`a`, Fn(`NOW`)})
	eq(t, []Expr{Ident(`name`), Ident(`at`)}, cols)
	eq(t, []Expr{Lit{`a`}, Fn(`NOW`)}, vals)
}
