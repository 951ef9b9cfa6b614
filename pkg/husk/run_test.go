package husk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSource(t *testing.T) {
	t.Run("evaluates a whole program", func(t *testing.T) {
		env := NewEnv()
		val, err := RunSource(context.Background(), "<test>", "(= x 5)\nx", env)
		require.NoError(t, err)
		assert.Equal(t, IntValue{Val: 5}, val)
	})

	t.Run("syntax errors carry the filename", func(t *testing.T) {
		_, err := RunSource(context.Background(), "broken.husk", "(f", NewEnv())
		var synErr *SyntaxError
		require.ErrorAs(t, err, &synErr)
		assert.Equal(t, "broken.husk", synErr.Filename)
	})
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.husk")
	require.NoError(t, os.WriteFile(path, []byte(`((\(x) x) 7)`), 0644))

	val, err := RunFile(context.Background(), path, NewEnv())
	require.NoError(t, err)
	assert.Equal(t, IntValue{Val: 7}, val)

	_, err = RunFile(context.Background(), filepath.Join(dir, "missing.husk"), NewEnv())
	assert.Error(t, err)
}
