/*
SQL Query: programmatic SQL statement builder. Statements are assembled from
small composable expressions and compiled into SQL text with positional
placeholders, plus the ordered list of arguments bound to them. Nothing is
executed: pass the output to any database driver.

Key Features

• Every expression implements `Expr`, appending text and arguments. Statements
are expressions too, so they nest as subqueries.

• Values are never interpolated into the text. Each value becomes a `?`
placeholder, in the same order as the arguments. `Compiler` can rewrite them
into Postgres-style `$1`, `$2`, ...

• Builders fail fast. Malformed input, such as an empty identifier or a missing
join condition, panics with a typed `Err` at the call site. `Compile` and
`Catch` convert such panics into returned errors.

• "where" and "having" are accumulated incrementally with `.Where`,
`.AndWhere` and `.OrWhere`, which makes conditional filters simple.

• Supports deriving column lists and INSERT/UPDATE values from structs tagged
with "db".

Examples

	stmt := sqlq.Select(`u.id`, `u.username`, sqlq.Alias(sqlq.Fn(`COUNT`, `o.id`), `total`)).
		From(sqlq.Alias(`users`, `u`)).
		LeftJoin(sqlq.Alias(`orders`, `o`), sqlq.On(`o.user_id`, `u.id`)).
		Where(sqlq.Field(`u.active`).Eq(true)).
		GroupBy(`u.id`, `u.username`).
		OrderBy(`total`, sqlq.DirDesc).
		Limit(10)

	text, args, err := sqlq.Compile(stmt)

	// text: SELECT u.id, u.username, COUNT(o.id) AS total FROM users AS u
	//   LEFT JOIN orders AS o ON o.user_id = u.id WHERE u.active = ?
	//   GROUP BY u.id, u.username ORDER BY total DESC LIMIT 10
	// args: [true]

Identifiers are encoded verbatim and never quoted; references to tables,
columns and aliases are not checked. See the `Example*` functions for more.
*/
package sqlq
