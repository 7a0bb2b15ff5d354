package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"start"},
		{"run"},
		{"migrate", "up"},
		{"migrate", "version"},
		{"seed"},
		{"worker", "run"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotEqual(t, root, cmd, path)
	}
}

func TestSeedThenVersion(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "cli.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_WRITER_DSN", dsn)
	t.Setenv("OBS_ENABLE_METRICS", "false")
	t.Setenv("OBS_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"seed"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "seed data applied")

	out.Reset()
	root = NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"migrate", "version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "schema version 1")
}
