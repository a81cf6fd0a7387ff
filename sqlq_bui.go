package sqlq

/*
Short for "builder". Tiny shortcut for building SQL expressions: the render
context passed through `Expr.AppendExpr`. Holds the text and the arguments of
the fragment rendered so far. Used internally by every `Expr` implementation in
this package.
*/
type Bui struct {
	Text []byte
	Args []any
}

// Returns text and args as-is. Useful shortcut for passing them to
// `AppendExpr`.
func (self Bui) Get() ([]byte, []any) {
	return self.Text, self.Args
}

// Replaces text and args with the inputs.
func (self *Bui) Set(text []byte, args []any) {
	self.Text = text
	self.Args = args
}

// Shortcut for `self.String(), self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Bui) Reify() (string, []any) {
	return self.String(), self.Args
}

// Returns inner text as a string, performing a free cast.
func (self Bui) String() string {
	return bytesToMutableString(self.Text)
}

// Adds a space if the preceding text doesn't already end with a delimiter.
func (self *Bui) Space() {
	self.Text = maybeAppendSpace(self.Text)
}

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *Bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Appends the provided string as-is, without any delimiting.
func (self *Bui) Write(val string) {
	self.Text = append(self.Text, val...)
}

/*
Appends an expression, delimited from the preceding text by a space, if
necessary. Nil input is a nop: nothing will be appended.
*/
func (self *Bui) Expr(val Expr) {
	if val != nil {
		self.Space()
		self.Set(val.AppendExpr(self.Get()))
	}
}

// Appends a sub-expression wrapped in parens. Nil input is a nop.
func (self *Bui) SubExpr(val Expr) {
	if val != nil {
		self.Str(`(`)
		self.Expr(val)
		self.Str(`)`)
	}
}

// Appends the expressions separated by commas.
func (self *Bui) List(vals []Expr) {
	for ind, val := range vals {
		if ind > 0 {
			self.Str(`,`)
		}
		self.Expr(val)
	}
}

// Appends a keyword followed by the comma-separated expressions. Empty input
// is a nop: the keyword is omitted too.
func (self *Bui) Clause(keyword string, vals []Expr) {
	if len(vals) > 0 {
		self.Str(keyword)
		self.List(vals)
	}
}

/*
Appends an argument to `.Args` and the positional placeholder `?` to `.Text`,
space-separated from previous text if necessary. This is the only way
placeholders are produced, which keeps the arguments in the same order as the
placeholders.
*/
func (self *Bui) Arg(val any) {
	self.Args = append(self.Args, val)
	self.Str(`?`)
}

/*
Appends an arbitrary value. If the value implements `Expr`, this calls
`(*Bui).Expr`. Otherwise, appends an argument and the corresponding
placeholder.
*/
func (self *Bui) Any(val any) {
	impl, _ := val.(Expr)
	if impl != nil {
		self.Expr(impl)
		return
	}
	self.Arg(val)
}
