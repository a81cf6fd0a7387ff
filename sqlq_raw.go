package sqlq

import (
	"fmt"
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Raw SQL fragment with parameters, for anything the typed expressions don't
cover. The text may use either Postgres-style ordinal parameters `$1`, `$2`,
... with `.Args`, or named parameters `:name` with `.Dict`, never both. Each
parameter occurrence is encoded as `?` and appends its argument, so repeated
parameters repeat the argument. An argument that implements `Expr` is inlined
instead:

	Raw(`created_at > now() - $1::interval`, `1 day`)
	-> `created_at > now() - ?::interval` [1 day]

	Named(`a = :val OR b = :val`, map[string]any{`val`: 10})
	-> `a = ? OR b = ?` [10 10]

Quoted strings, quoted identifiers and comments are preserved as-is. A bare `?`
outside of them is rejected, since every placeholder must come with an
argument. Build it with `Raw` or `Named`, which validate the text and the
parameters.
*/
type RawExpr struct {
	Text string
	Args []any
	Dict map[string]any
}

/*
Makes a `RawExpr` with ordinal parameters. Panics if a parameter exceeds the
arguments, if an argument is unused, or if the text has named parameters.
*/
func Raw(src string, args ...any) RawExpr {
	out := RawExpr{Text: src, Args: args}
	out.validate(`making raw expression`)
	return out
}

/*
Makes a `RawExpr` with named parameters. Panics if a parameter is missing from
the dictionary, if a dictionary entry is unused, or if the text has ordinal
parameters.
*/
func Named(src string, args map[string]any) RawExpr {
	if args == nil {
		args = map[string]any{}
	}
	out := RawExpr{Text: src, Dict: args}
	out.validate(`making named raw expression`)
	return out
}

// Implement the `Expr` interface, making this a sub-expression.
func (self RawExpr) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{text, args}
	if self.Text != `` && !hasDelimPrefix(self.Text) {
		bui.Space()
	}

	self.walk(
		`encoding raw expression`,
		func(node sqlp.Node) { node.Append(&bui.Text) },
		func(_ string, _ int, val any) {
			impl, _ := val.(Expr)
			if impl != nil {
				bui.Set(impl.AppendExpr(bui.Get()))
				return
			}
			bui.Args = append(bui.Args, val)
			bui.Write(`?`)
		},
	)
	return bui.Get()
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self RawExpr) String() string { return exprString(self) }

func (self RawExpr) validate(while string) {
	if strings.TrimSpace(self.Text) == `` {
		panic(errExpr(while, `empty raw expression`))
	}

	usedOrd := make([]bool, len(self.Args))
	usedNamed := make(map[string]bool, len(self.Dict))

	self.walk(while, nil, func(key string, index int, _ any) {
		if key == `` {
			usedOrd[index] = true
		} else {
			usedNamed[key] = true
		}
	})

	for ind, used := range usedOrd {
		if !used {
			panic(Err{
				Code:  ErrCodeUnusedArgument,
				While: while,
				Cause: fmt.Errorf(`unused argument %#v at index %v`, self.Args[ind], ind),
			})
		}
	}

	for key := range self.Dict {
		if !usedNamed[key] {
			panic(Err{
				Code:  ErrCodeUnusedArgument,
				While: while,
				Cause: fmt.Errorf(`unused named argument %q`, key),
			})
		}
	}
}

/*
Tokenizes the text, passing non-parameter nodes to `onNode` and the argument of
each parameter to `onArg`. The key is empty for ordinal parameters, the index
is -1 for named ones. Panics on parameters of the wrong kind or without
arguments.
*/
func (self RawExpr) walk(while string, onNode func(sqlp.Node), onArg func(string, int, any)) {
	tokenizer := sqlp.Tokenizer{Source: self.Text}

	for {
		node := tokenizer.Next()
		if node == nil {
			return
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			if self.Dict != nil {
				panic(Err{
					Code:  ErrCodeUnexpectedParameter,
					While: while,
					Cause: fmt.Errorf(`expected only named params, got ordinal param %v`, node),
				})
			}

			index := node.Index()
			if index < 0 || index >= len(self.Args) {
				panic(Err{
					Code:  ErrCodeOrdinalOutOfBounds,
					While: while,
					Cause: fmt.Errorf(`ordinal parameter %v exceeds argument count %v`, node, len(self.Args)),
				})
			}
			onArg(``, index, self.Args[index])

		case sqlp.NodeNamedParam:
			if self.Dict == nil {
				panic(Err{
					Code:  ErrCodeUnexpectedParameter,
					While: while,
					Cause: fmt.Errorf(`expected only ordinal params, got named param %q`, string(node)),
				})
			}

			val, ok := self.Dict[string(node)]
			if !ok {
				panic(Err{
					Code:  ErrCodeMissingArgument,
					While: while,
					Cause: fmt.Errorf(`missing named argument %q`, string(node)),
				})
			}
			onArg(string(node), -1, val)

		case sqlp.NodeText:
			if strings.Contains(string(node), `?`) {
				panic(errExpr(while, `unexpected placeholder "?" in %q; use $N or :name parameters`, self.Text))
			}
			if onNode != nil {
				onNode(node)
			}

		default:
			if onNode != nil {
				onNode(node)
			}
		}
	}
}
