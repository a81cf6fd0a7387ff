package compile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mitranim/sqlq"
	"github.com/mitranim/sqlq/internal/config"
)

const testDocument = `
queries:
  - name: active_users
    select:
      columns: [id, username]
      from: [users]
      where:
        - {field: active, value: true}
        - {field: role, op: in, value: [admin, owner]}
      order_by: [username]
  - name: purge_sessions
    delete:
      table: sessions
`

func writeDocument(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.yml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRun_text(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfig()

	require.NoError(t, run(&out, writeDocument(t, testDocument), "", cfg))

	text := out.String()
	assert.Contains(t, text, "-- active_users\n")
	assert.Contains(t, text, "SELECT id, username FROM users WHERE active = ? AND role IN (?, ?) ORDER BY username\n")
	assert.Contains(t, text, "admin")
	assert.Contains(t, text, "owner")
	assert.Contains(t, text, "-- purge_sessions\nDELETE FROM sessions\n")
}

func TestRun_jsonDollar(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfig()
	cfg.Compile.Format = config.OutputFormatJson
	cfg.Compile.Placeholder = sqlq.PlaceholderDollar

	require.NoError(t, run(&out, writeDocument(t, testDocument), "", cfg))

	res := out.String()
	require.True(t, gjson.Valid(res), res)
	assert.Equal(t, "dollar", gjson.Get(res, "placeholder").String())
	assert.Equal(t, int64(2), gjson.Get(res, "queries.#").Int())
	assert.Equal(t, "active_users", gjson.Get(res, "queries.0.name").String())
	assert.Equal(t,
		"SELECT id, username FROM users WHERE active = $1 AND role IN ($2, $3) ORDER BY username",
		gjson.Get(res, "queries.0.sql").String(),
	)
	assert.Equal(t, `[true,"admin","owner"]`, gjson.Get(res, "queries.0.params").Raw)
	assert.Equal(t, `[]`, gjson.Get(res, "queries.1.params").Raw)
}

func TestRun_name(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfig()
	cfg.Compile.Format = config.OutputFormatJson

	require.NoError(t, run(&out, writeDocument(t, testDocument), "purge_sessions", cfg))
	assert.Equal(t, int64(1), gjson.Get(out.String(), "queries.#").Int())
	assert.Equal(t, "DELETE FROM sessions", gjson.Get(out.String(), "queries.0.sql").String())

	err := run(&bytes.Buffer{}, writeDocument(t, testDocument), "missing", cfg)
	require.Error(t, err)
}

func TestRun_errors(t *testing.T) {
	cfg := config.NewConfig()

	err := run(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yml"), "", cfg)
	require.Error(t, err)

	err = run(&bytes.Buffer{}, writeDocument(t, "queries:\n  - {name: bad, insert: {table: t}}\n"), "", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlq.ErrInvalidClauseState)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestCmd_invalidLogLevel(t *testing.T) {
	prev := Config
	t.Cleanup(func() { Config = prev })

	Config = config.NewConfig()
	Config.Log.Level = "verbose"

	err := Cmd.RunE(Cmd, []string{writeDocument(t, testDocument)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "verbose"`)
}
