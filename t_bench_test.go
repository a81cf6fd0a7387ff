package sqlq

import (
	"testing"
)

var benchSelect = Select(`u.id`, `u.username`, Alias(Fn(`COUNT`, `o.id`), `total`)).
	From(Alias(`users`, `u`)).
	LeftJoin(Alias(`orders`, `o`), On(`o.user_id`, `u.id`)).
	Where(Field(`u.active`).Eq(true)).
	AndWhere(Field(`u.role`).In(`admin`, `owner`, `member`)).
	GroupBy(`u.id`, `u.username`).
	Having(Field(Fn(`COUNT`, `o.id`)).Gt(5)).
	OrderBy(`total`, DirDesc).
	Limit(50)

func Benchmark_Compile_question(b *testing.B) {
	for ind := 0; ind < b.N; ind++ {
		_, _, _ = Compile(benchSelect)
	}
}

func Benchmark_Compile_dollar(b *testing.B) {
	compiler := Compiler{Placeholder: PlaceholderDollar}
	for ind := 0; ind < b.N; ind++ {
		_, _, _ = compiler.Compile(benchSelect)
	}
}

func Benchmark_build_select(b *testing.B) {
	for ind := 0; ind < b.N; ind++ {
		_ = Select(`id`).From(`users`).
			AndWhere(Field(`a`).Eq(1)).
			AndWhere(Field(`b`).Eq(2)).
			OrWhere(Field(`c`).Eq(3)).
			OrderBy(`id`)
	}
}
