package sqlq

import (
	"fmt"
	"strings"

	"github.com/mitranim/sqlp"
)

const (
	PlaceholderQuestion Placeholder = 0
	PlaceholderDollar   Placeholder = 1
)

/*
Placeholder style of compiled SQL. Expressions always encode positional `?`.
`PlaceholderDollar` rewrites them to Postgres-style `$1`, `$2`, ... after
encoding.
*/
type Placeholder byte

// Implement `fmt.Stringer`.
func (self Placeholder) String() string {
	if self == PlaceholderDollar {
		return `dollar`
	}
	return `question`
}

// Implement `encoding.TextMarshaler`.
func (self Placeholder) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Placeholder) UnmarshalText(src []byte) error {
	val, err := ParsePlaceholder(string(src))
	if err != nil {
		return err
	}
	*self = val
	return nil
}

// Parses "question"/"?" or "dollar"/"$", case-insensitively. Empty input is
// `PlaceholderQuestion`.
func ParsePlaceholder(src string) (Placeholder, error) {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case ``, `question`, `?`:
		return PlaceholderQuestion, nil
	case `dollar`, `$`:
		return PlaceholderDollar, nil
	default:
		return 0, Err{
			Code:  ErrCodeInvalidInput,
			While: `parsing placeholder style`,
			Cause: fmt.Errorf(`unrecognized placeholder style %q`, src),
		}
	}
}

/*
Compiles statements and other expressions into SQL text and arguments. The zero
value is ready to use and produces `?` placeholders.
*/
type Compiler struct {
	Placeholder Placeholder
}

/*
Encodes the expression, returning the SQL text and the arguments for its
placeholders, in order. Compilation is read-only: compiling the same
unmodified statement again returns identical output.

If the expression implements `Validator`, it's validated first. Panics during
encoding are converted to errors. Only the structure of statements is checked,
never whether the referenced tables or columns make sense.
*/
func (self Compiler) Compile(val Expr) (text string, args []any, err error) {
	defer rec(&err)

	if isNil(val) {
		return ``, nil, errExpr(`compiling`, `missing statement`)
	}

	validator, _ := val.(Validator)
	if validator != nil {
		err = validator.Validate()
		if err != nil {
			return ``, nil, err
		}
	}

	var bui Bui
	bui.Expr(val)
	text = string(bui.Text)

	switch self.Placeholder {
	case PlaceholderQuestion:
	case PlaceholderDollar:
		text = dollarize(text, len(bui.Args))
	default:
		return ``, nil, Err{
			Code:  ErrCodeInvalidInput,
			While: `compiling`,
			Cause: fmt.Errorf(`unknown placeholder style %v`, byte(self.Placeholder)),
		}
	}

	return text, bui.Args, nil
}

// Shortcut for `Compiler{}.Compile`, producing `?` placeholders.
func Compile(val Expr) (string, []any, error) {
	return Compiler{}.Compile(val)
}

/*
Rewrites `?` placeholders into `$N`, skipping quoted strings, quoted
identifiers and comments. Panics if the number of placeholders doesn't match
the number of arguments.
*/
func dollarize(src string, count int) string {
	tokenizer := sqlp.Tokenizer{Source: src}
	buf := make([]byte, 0, len(src)+count)
	var ord sqlp.NodeOrdinalParam

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		text, ok := node.(sqlp.NodeText)
		if !ok {
			node.Append(&buf)
			continue
		}

		for ind := 0; ind < len(text); ind++ {
			if text[ind] == '?' {
				ord++
				ord.Append(&buf)
			} else {
				buf = append(buf, text[ind])
			}
		}
	}

	if int(ord) != count {
		panic(Err{
			Code:  ErrCodeInternal,
			While: `rewriting placeholders`,
			Cause: fmt.Errorf(`found %v placeholders for %v arguments`, int(ord), count),
		})
	}
	return string(buf)
}
