package sqlq

import (
	"testing"
	"time"
)

func Test_Lit(t *testing.T) {
	testExpr(t, rei(`?`, nil), Lit{})
	testExpr(t, rei(`?`, 10), Lit{10})
	testExpr(t, rei(`?`, `admin`), Lit{`admin`})
	testExprs(t, rei(`? ?`, 10, 20), Lit{10}, Lit{20})
}

func Test_Ident(t *testing.T) {
	testExpr(t, rei(`id`), Ident(`id`))
	testExpr(t, rei(`u.role_id`), Ident(`u.role_id`))
	testExprs(t, rei(`one two`), Ident(`one`), Ident(`two`))
}

func Test_Star(t *testing.T) {
	testExpr(t, rei(`*`), Star{})
}

func Test_Int(t *testing.T) {
	testExpr(t, rei(`0`), Int(0))
	testExpr(t, rei(`-10`), Int(-10))
	testExpr(t, rei(`123`), Int(123))
}

func Test_Parens(t *testing.T) {
	testExpr(t, rei(`()`), Parens{})
	testExpr(t, rei(`(id)`), Parens{Ident(`id`)})
	testExpr(t, rei(`(?)`, 10), Parens{Lit{10}})
}

func Test_Alias(t *testing.T) {
	testExpr(t, rei(`users AS u`), Alias(`users`, `u`))
	testExpr(t, rei(`SUM(salary) AS total`), Alias(Fn(`SUM`, `salary`), `total`))
	testExpr(t, rei(`(SELECT id FROM admins) AS a`), Alias(Parens{Select(`id`).From(`admins`)}, `a`))
	testExpr(t, rei(`(SELECT id FROM admins) AS a`), Alias(Select(`id`).From(`admins`), `a`))

	eq(t, Ident(`u`), Alias(`users`, `u`).Ref())

	panics(t, ErrInvalidExpression, `missing alias`, func() { Alias(`users`, ``) })
	panics(t, ErrInvalidExpression, `missing alias`, func() { Alias(`users`, `  `) })
	panics(t, ErrInvalidExpression, `empty identifier`, func() { Alias(``, `u`) })
	panics(t, ErrInvalidExpression, `missing operand`, func() { Alias(nil, `u`) })
	panics(t, ErrInvalidExpression, `expected string or expression`, func() { Alias(10, `u`) })
}

func Test_Fn(t *testing.T) {
	testExpr(t, rei(`NOW()`), Fn(`NOW`))
	testExpr(t, rei(`COUNT(id)`), Fn(`COUNT`, `id`))
	testExpr(t, rei(`COUNT(*)`), Fn(`COUNT`, Star{}))
	testExpr(t, rei(`COALESCE(nickname, username)`), Fn(`COALESCE`, `nickname`, `username`))
	testExpr(t, rei(`ROUND(price, ?)`, 2), Fn(`ROUND`, `price`, 2))
	testExpr(t, rei(`LOWER(TRIM(name))`), Fn(`LOWER`, Fn(`TRIM`, `name`)))

	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	testExpr(t, rei(`DATE_TRUNC(?, ?)`, `day`, at), Fn(`DATE_TRUNC`, Lit{`day`}, at))

	panics(t, ErrInvalidExpression, `missing function name`, func() { Fn(``) })
	panics(t, ErrInvalidExpression, `missing operand`, func() { Fn(`COUNT`, nil) })
	panics(t, ErrInvalidExpression, `empty identifier`, func() { Fn(`COUNT`, ``) })
}

func Test_List(t *testing.T) {
	testExpr(t, rei(`()`), List{})
	testExpr(t, rei(`(?)`, 1), List{Lit{1}})
	testExpr(t, rei(`(?, ?, id)`, 1, 2), List{Lit{1}, Lit{2}, Ident(`id`)})
}

func Test_Range(t *testing.T) {
	testExpr(t, rei(`? AND ?`, 1, 2), Range{Lit{1}, Lit{2}})
}

func Test_Cmp(t *testing.T) {
	testExpr(t, rei(`id = ?`, 1), Cmp(`id`, OpEq, 1))
	testExpr(t, rei(`id <> ?`, 1), Cmp(`id`, OpNeq, 1))
	testExpr(t, rei(`name LIKE ?`, `a%`), Cmp(`name`, OpLike, `a%`))
	testExpr(t, rei(`deleted_at IS NULL`), Cmp(`deleted_at`, OpIsNull, nil))
	testExpr(t, rei(`id IN (?, ?)`, 1, 2), Cmp(`id`, OpIn, []int{1, 2}))
	testExpr(t, rei(`id NOT IN (?)`, 1), Cmp(`id`, OpNotIn, []any{1}))
	testExpr(t, rei(`age BETWEEN ? AND ?`, 18, 30), Cmp(`age`, OpBetween, []any{18, 30}))
	testExpr(t, rei(`age NOT BETWEEN ? AND ?`, 18, 30), Cmp(`age`, OpNotBetween, Range{Lit{18}, Lit{30}}))
	testExpr(t, rei(`a.id = b.id`), Cmp(`a.id`, OpEq, Ident(`b.id`)))

	panics(t, ErrInvalidExpression, `unknown operator`, func() { Cmp(`id`, `~~`, 1) })
	panics(t, ErrInvalidExpression, `missing right operand`, func() { Cmp(`id`, OpEq, nil) })
	panics(t, ErrInvalidExpression, `takes no right operand`, func() { Cmp(`id`, OpIsNull, 1) })
	panics(t, ErrInvalidExpression, `missing operand`, func() { Cmp(nil, OpEq, 1) })
	panics(t, ErrInvalidExpression, `empty value list`, func() { Cmp(`id`, OpIn, []int{}) })
	panics(t, ErrInvalidExpression, `empty value list`, func() { Cmp(`id`, OpIn, List{}) })
	panics(t, ErrInvalidExpression, `expected list`, func() { Cmp(`id`, OpIn, 10) })
	panics(t, ErrInvalidExpression, `expected list`, func() { Cmp(`id`, OpIn, []byte(`ab`)) })
	panics(t, ErrInvalidExpression, `expected 2 range bounds`, func() { Cmp(`age`, OpBetween, []any{1}) })
	panics(t, ErrInvalidExpression, `expected range`, func() { Cmp(`age`, OpBetween, 1) })
	panics(t, ErrInvalidExpression, `missing range bound`, func() { Cmp(`age`, OpBetween, Range{Lit{1}, nil}) })
}

func Test_On(t *testing.T) {
	testExpr(t, rei(`u.role_id = r.id`), On(`u.role_id`, `r.id`))
	panics(t, ErrInvalidExpression, `empty identifier`, func() { On(`u.role_id`, ``) })
	panics(t, ErrInvalidExpression, `missing operand`, func() { On(nil, `r.id`) })
}

func Test_Conj(t *testing.T) {
	one := Field(`one`).Eq(1)
	two := Field(`two`).Eq(2)
	three := Field(`three`).Eq(3)

	testExpr(t, rei(`one = ?`, 1), And(one))
	testExpr(t, rei(`one = ? AND two = ?`, 1, 2), And(one, two))
	testExpr(t, rei(`one = ? OR two = ?`, 1, 2), Or(one, two))

	t.Run(`same kind is inline`, func(t *testing.T) {
		testExpr(t, rei(`one = ? AND two = ? AND three = ?`, 1, 2, 3), And(And(one, two), three))
	})

	t.Run(`other kind is parenthesized`, func(t *testing.T) {
		testExpr(t, rei(`(one = ? AND two = ?) OR three = ?`, 1, 2, 3), Or(And(one, two), three))
		testExpr(t, rei(`one = ? AND (two = ? OR three = ?)`, 1, 2, 3), And(one, Or(two, three)))
	})

	t.Run(`single member of other kind is inline`, func(t *testing.T) {
		testExpr(t, rei(`one = ? OR two = ?`, 1, 2), Or(And(one), two))
	})

	t.Run(`invalid`, func(t *testing.T) {
		panics(t, ErrInvalidExpression, `at least one predicate`, func() { And() })
		panics(t, ErrInvalidExpression, `at least one predicate`, func() { Or() })
		panics(t, ErrInvalidExpression, `missing predicate at index 1`, func() { And(one, nil) })
		panics(t, ErrInvalidExpression, `missing predicate at index 0`, func() { Or((*SelectStmt)(nil)) })
	})

	t.Run(`doesn't share input`, func(t *testing.T) {
		src := []Expr{one, two}
		conj := And(src...)
		src[0] = three
		testExpr(t, rei(`one = ? AND two = ?`, 1, 2), conj)
	})
}

func Test_ConjKind_String(t *testing.T) {
	eq(t, `AND`, KindAnd.String())
	eq(t, `OR`, KindOr.String())
}
