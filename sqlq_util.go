package sqlq

import (
	r "reflect"
	"strings"
	"unsafe"
)

var (
	charsetSpace      = new(charset).addStr(" \t\v")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetDelimStart = new(charset).addSet(charsetWhitespace).addStr(`([{.`)
	charsetDelimEnd   = new(charset).addSet(charsetWhitespace).addStr(`,}])`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Should not be used when the underlying byte array is
volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func maybeAppendSpace(val []byte) []byte {
	if hasDelimSuffix(bytesToMutableString(val)) {
		return val
	}
	return append(val, ` `...)
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

func isNil(val any) bool {
	if val == nil {
		return true
	}
	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Chan, r.Func, r.Interface, r.Map, r.Pointer, r.Slice:
		return rval.IsNil()
	default:
		return false
	}
}

// Converts a column-like input into an expression. Strings become `Ident`.
func identOf(while string, val any) Expr {
	switch val := val.(type) {
	case nil:
		panic(errExpr(while, `missing operand`))
	case string:
		if strings.TrimSpace(val) == `` {
			panic(errExpr(while, `empty identifier`))
		}
		return Ident(val)
	case Expr:
		if isNil(val) {
			panic(errExpr(while, `missing operand`))
		}
		return subqueryOf(val)
	default:
		panic(errExpr(while, `expected string or expression, got %T`, val))
	}
}

// Converts a value-like input into an expression. Non-expressions become `Lit`.
func valueOf(while string, val any) Expr {
	impl, _ := val.(Expr)
	if impl != nil {
		if isNil(impl) {
			panic(errExpr(while, `missing operand`))
		}
		return subqueryOf(impl)
	}
	return Lit{val}
}

// Statements used as operands are parenthesized. Other expressions are
// returned as-is.
func subqueryOf(val Expr) Expr {
	switch val.(type) {
	case *SelectStmt, *InsertStmt, *UpdateStmt, *DeleteStmt:
		return Parens{val}
	default:
		return val
	}
}

func identsOf(while string, vals []any) []Expr {
	if len(vals) == 0 {
		return nil
	}
	out := make([]Expr, 0, len(vals))
	for _, val := range vals {
		out = append(out, identOf(while, val))
	}
	return out
}

func copyExprs(vals []Expr) []Expr {
	if vals == nil {
		return nil
	}
	out := make([]Expr, len(vals))
	copy(out, vals)
	return out
}

func exprString(val Expr) string {
	if val == nil {
		return ``
	}
	text, _ := val.AppendExpr(nil, nil)
	return bytesToMutableString(text)
}
