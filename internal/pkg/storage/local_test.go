package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Upload(ctx, strings.NewReader("sheet"), "imports/2024/06/15/batch.xlsx", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "imports/2024/06/15/batch.xlsx", key)

	data, err := os.ReadFile(filepath.Join(dir, "imports", "2024", "06", "15", "batch.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "sheet", string(data))

	_, err = s.Upload(ctx, strings.NewReader("newer"), key, "")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "newer", string(data), "uploading to an existing key replaces it")
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, p := range []string{"../outside.xlsx", "imports/../../outside.xlsx", "", "."} {
		_, err := s.Upload(ctx, strings.NewReader("x"), p, "")
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestLocalStorage_LeadingSlashStaysInside(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("x"), "/imports/a.xls", "")
	require.NoError(t, err)
	assert.Equal(t, "imports/a.xls", key)
}
