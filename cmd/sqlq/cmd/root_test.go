package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "sqlq", RootCmd.Use)

	sub, _, err := RootCmd.Find([]string{"compile"})
	require.NoError(t, err)
	assert.Equal(t, "compile", sub.Name())

	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, RootCmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"placeholder", "format", "name"} {
		assert.NotNil(t, sub.Flags().Lookup(name), name)
	}
}
