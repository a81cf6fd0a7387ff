/*
Package querydoc reads statements described in YAML and builds them with sqlq.
A document holds a list of named queries, each with exactly one of "select",
"insert", "update" or "delete":

	queries:
	  - name: top_spenders
	    select:
	      columns:
	        - u.id
	        - {fn: SUM, args: [o.amount], as: total}
	      from: [{name: users, as: u}]
	      joins:
	        - {kind: left, table: {name: orders, as: o}, on: [o.user_id, u.id]}
	      where:
	        - {field: u.active, op: "=", value: true}
	      group_by: [u.id]
	      order_by: [total desc]
	      limit: 10

Conditions in "where" and "having" are combined in order: the first one sets
the clause, later ones are added with "AND", or with "OR" when `or: true`.
*/
package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlq"
)

type Document struct {
	Queries []Query `yaml:"queries"`
}

type Query struct {
	Name   string     `yaml:"name"`
	Select *SelectDoc `yaml:"select"`
	Insert *InsertDoc `yaml:"insert"`
	Update *UpdateDoc `yaml:"update"`
	Delete *DeleteDoc `yaml:"delete"`
}

type SelectDoc struct {
	Distinct bool        `yaml:"distinct"`
	Columns  []Column    `yaml:"columns"`
	From     []Column    `yaml:"from"`
	Joins    []Join      `yaml:"joins"`
	Where    []Condition `yaml:"where"`
	GroupBy  []Column    `yaml:"group_by"`
	Having   []Condition `yaml:"having"`
	OrderBy  []OrderBy   `yaml:"order_by"`
	Limit    *int        `yaml:"limit"`
	Offset   *int        `yaml:"offset"`
}

type InsertDoc struct {
	Table     string   `yaml:"table"`
	Columns   []string `yaml:"columns"`
	Rows      [][]any  `yaml:"rows"`
	Returning []string `yaml:"returning"`
}

type UpdateDoc struct {
	Table     string      `yaml:"table"`
	Set       []Assign    `yaml:"set"`
	Where     []Condition `yaml:"where"`
	Returning []string    `yaml:"returning"`
}

type DeleteDoc struct {
	Table     string      `yaml:"table"`
	Where     []Condition `yaml:"where"`
	Returning []string    `yaml:"returning"`
}

type Assign struct {
	Column string `yaml:"column"`
	Value  any    `yaml:"value"`
}

/*
Column, table or function call, with an optional alias. A plain scalar is
shorthand for `{name: <scalar>}`.
*/
type Column struct {
	Name string `yaml:"name"`
	Fn   string `yaml:"fn"`
	Args []any  `yaml:"args"`
	As   string `yaml:"as"`
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Column{Name: node.Value}
		return nil
	}
	if err := checkKeys(node, "column", "name", "fn", "args", "as"); err != nil {
		return err
	}
	type plain Column
	return node.Decode((*plain)(c))
}

type Join struct {
	Kind  string   `yaml:"kind"`
	Table Column   `yaml:"table"`
	On    []string `yaml:"on"`
}

/*
Single predicate. Exactly one form is used:

  - `field` and `op`, compared to a literal `value` or to another column `ref`
  - `raw` SQL with ordinal `args`
  - `any` or `all`, nested conditions joined with "OR" or "AND"
*/
type Condition struct {
	Field *Column     `yaml:"field"`
	Op    string      `yaml:"op"`
	Value any         `yaml:"value"`
	Ref   string      `yaml:"ref"`
	Raw   string      `yaml:"raw"`
	Args  []any       `yaml:"args"`
	Any   []Condition `yaml:"any"`
	All   []Condition `yaml:"all"`
	Or    bool        `yaml:"or"`
}

/*
Single "order by" entry. A plain scalar such as "total desc" is shorthand for
`{col: total, dir: desc}`.
*/
type OrderBy struct {
	Col Column   `yaml:"col"`
	Dir sqlq.Dir `yaml:"dir"`
}

func (o *OrderBy) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		if err := checkKeys(node, "order by", "col", "dir"); err != nil {
			return err
		}
		type plain OrderBy
		return node.Decode((*plain)(o))
	}

	fields := strings.Fields(node.Value)
	if len(fields) == 0 {
		return fmt.Errorf("line %d: empty order by entry", node.Line)
	}

	*o = OrderBy{}
	if len(fields) > 1 {
		if err := o.Dir.Parse(fields[len(fields)-1]); err == nil {
			fields = fields[:len(fields)-1]
		}
	}
	o.Col = Column{Name: strings.Join(fields, " ")}
	return nil
}

// Decoding through yaml.Node skips the decoder's known-fields check, so
// custom unmarshalers check mapping keys themselves.
func checkKeys(node *yaml.Node, what string, known ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for ind := 0; ind+1 < len(node.Content); ind += 2 {
		key := node.Content[ind]
		if !slices.Contains(known, key.Value) {
			return fmt.Errorf("line %d: unknown %s field %q", key.Line, what, key.Value)
		}
	}
	return nil
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read query document: %w", err)
	}
	return Parse(src)
}

// Parse decodes a document, rejecting unknown keys.
func Parse(src []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty query document")
		}
		return nil, fmt.Errorf("cannot decode query document: %w", err)
	}
	if len(doc.Queries) == 0 {
		return nil, errors.New("query document has no queries")
	}
	return doc, nil
}

// Build makes the statement described by the query. Builder panics are
// returned as errors.
func (q *Query) Build() (stmt sqlq.Expr, err error) {
	count := 0
	for _, set := range []bool{q.Select != nil, q.Insert != nil, q.Update != nil, q.Delete != nil} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("query %q: expected exactly one of select, insert, update, delete; got %d", q.Name, count)
	}

	err = sqlq.Catch(func() {
		switch {
		case q.Select != nil:
			stmt = q.Select.build()
		case q.Insert != nil:
			stmt = q.Insert.build()
		case q.Update != nil:
			stmt = q.Update.build()
		case q.Delete != nil:
			stmt = q.Delete.build()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", q.Name, err)
	}
	return stmt, nil
}

func (d *SelectDoc) build() *sqlq.SelectStmt {
	stmt := sqlq.Select(columnsOf(d.Columns)...)
	if d.Distinct {
		stmt.Distinct()
	}
	stmt.From(columnsOf(d.From)...)

	for _, join := range d.Joins {
		join.apply(stmt)
	}
	for _, cond := range d.Where {
		if cond.Or {
			stmt.OrWhere(cond.build())
		} else {
			stmt.AndWhere(cond.build())
		}
	}

	stmt.GroupBy(columnsOf(d.GroupBy)...)
	for _, cond := range d.Having {
		if cond.Or {
			stmt.OrHaving(cond.build())
		} else {
			stmt.AndHaving(cond.build())
		}
	}

	for _, ord := range d.OrderBy {
		stmt.OrderBy(ord.Col.build(), ord.Dir)
	}
	if d.Limit != nil {
		stmt.Limit(*d.Limit)
	}
	if d.Offset != nil {
		stmt.Offset(*d.Offset)
	}
	return stmt
}

func (d *InsertDoc) build() *sqlq.InsertStmt {
	stmt := sqlq.InsertInto(d.Table).Columns(stringsOf(d.Columns)...)
	for _, row := range d.Rows {
		stmt.Values(row...)
	}
	return stmt.Returning(stringsOf(d.Returning)...)
}

func (d *UpdateDoc) build() *sqlq.UpdateStmt {
	stmt := sqlq.Update(d.Table)
	for _, set := range d.Set {
		stmt.Set(set.Column, set.Value)
	}
	for _, cond := range d.Where {
		if cond.Or {
			stmt.OrWhere(cond.build())
		} else {
			stmt.AndWhere(cond.build())
		}
	}
	return stmt.Returning(stringsOf(d.Returning)...)
}

func (d *DeleteDoc) build() *sqlq.DeleteStmt {
	stmt := sqlq.DeleteFrom(d.Table)
	for _, cond := range d.Where {
		if cond.Or {
			stmt.OrWhere(cond.build())
		} else {
			stmt.AndWhere(cond.build())
		}
	}
	return stmt.Returning(stringsOf(d.Returning)...)
}

func (j Join) apply(stmt *sqlq.SelectStmt) {
	kind, err := sqlq.ParseJoinKind(j.Kind)
	if err != nil {
		panic(err)
	}

	if kind == sqlq.JoinCross {
		if len(j.On) > 0 {
			panic(fmt.Errorf("cross join with %v takes no condition", j.Table.Name))
		}
		stmt.CrossJoin(j.Table.build())
		return
	}

	if len(j.On) != 2 {
		panic(fmt.Errorf("join with %v: expected 2 columns in on, got %d", j.Table.Name, len(j.On)))
	}
	stmt.JoinKind(kind, j.Table.build(), sqlq.On(j.On[0], j.On[1]))
}

func (c Column) build() sqlq.Expr {
	var expr sqlq.Expr
	if c.Fn != "" {
		expr = sqlq.Fn(c.Fn, c.Args...)
	} else {
		expr = sqlq.Field(c.Name).Expr
	}

	if c.As != "" {
		return sqlq.Alias(expr, c.As)
	}
	return expr
}

func (c Condition) build() sqlq.Expr {
	switch {
	case c.Raw != "":
		return sqlq.Raw(c.Raw, c.Args...)
	case len(c.Any) > 0:
		return sqlq.Or(conditionsOf(c.Any)...)
	case len(c.All) > 0:
		return sqlq.And(conditionsOf(c.All)...)
	case c.Field == nil:
		panic(errors.New("condition requires field, raw, any or all"))
	}

	op := sqlq.OpEq
	if c.Op != "" {
		var err error
		op, err = sqlq.ParseOp(c.Op)
		if err != nil {
			panic(err)
		}
	}

	if c.Ref != "" {
		if c.Value != nil {
			panic(fmt.Errorf("condition on %v has both value and ref", c.Field.Name))
		}
		return sqlq.Cmp(c.Field.build(), op, sqlq.Ident(c.Ref))
	}
	return sqlq.Cmp(c.Field.build(), op, c.Value)
}

func conditionsOf(src []Condition) []sqlq.Expr {
	out := make([]sqlq.Expr, 0, len(src))
	for _, cond := range src {
		out = append(out, cond.build())
	}
	return out
}

func columnsOf(src []Column) []any {
	out := make([]any, 0, len(src))
	for _, col := range src {
		out = append(out, col.build())
	}
	return out
}

func stringsOf(src []string) []any {
	out := make([]any, 0, len(src))
	for _, val := range src {
		out = append(out, val)
	}
	return out
}
