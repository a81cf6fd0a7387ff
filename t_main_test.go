package sqlq

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// nolint:govet,unused
type Person struct {
	Id    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Notes string
	Skip  string `db:"-"`
	token string `db:"token"`
}

type Employee struct {
	Person
	Dept string `db:"dept"`
}

type Untagged struct {
	Id   int64
	Name string
}

type Encoder interface {
	fmt.Stringer
	Expr
}

func testEncoder(t testing.TB, exp string, val Encoder) {
	t.Helper()
	eq(t, exp, val.String())
	eq(t, exp, reify(val).Text)
}

func testExpr(t testing.TB, exp R, val Encoder) {
	t.Helper()
	testEncoder(t, exp.Text, val)
	testExprs(t, exp, val)
}

func testExprs(t testing.TB, exp R, vals ...Expr) {
	t.Helper()
	eq(t, exp, reify(vals...))
}

// Renders the expressions into one buffer, the way statements compose them.
func reify(vals ...Expr) R {
	var bui Bui
	for _, val := range vals {
		bui.Expr(val)
	}
	return R{string(bui.Text), bui.Args}.Norm()
}

// Compiles with `?` placeholders and fails the test on error.
func compiled(t testing.TB, val Expr) R {
	t.Helper()
	text, args, err := Compile(val)
	require.NoError(t, err)
	return R{text, args}.Norm()
}

// Short for "reified".
func rei(text string, args ...any) R { return R{text, args}.Norm() }

/*
Short for "reified". Text and arguments of a rendered expression. Tests don't
care about the difference between nil and zero-length arg lists.
*/
type R struct {
	Text string
	Args []any
}

func (self R) Norm() R {
	if self.Args == nil {
		self.Args = []any{}
	}
	return self
}

func eq(t testing.TB, exp, act any) {
	t.Helper()
	require.Equal(t, exp, act)
}

/*
Asserts that the function panics with an error matching the target via
`errors.Is`, with a message containing the given substring.
*/
func panics(t testing.TB, target error, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)
	require.NotNil(t, val, `expected a panic, found none`)

	err, ok := val.(error)
	require.True(t, ok, `expected an error panic, got %#v`, val)
	require.True(t, errors.Is(err, target), `expected %v, got %v`, target, err)
	require.True(t, strings.Contains(err.Error(), msg), `expected %q in %q`, msg, err.Error())
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }

// Counts placeholders, which must match the argument count.
func countPlaceholders(text string) int { return strings.Count(text, `?`) }
