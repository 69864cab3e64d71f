package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_UploadDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	err = s.Upload(ctx, "alice-123.png", "image/png", strings.NewReader("png bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(s.baseDir, "alice-123.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))

	assert.Equal(t, "http://localhost:8080/uploads/alice-123.png", s.URL("alice-123.png"))

	require.NoError(t, s.Delete(ctx, "alice-123.png"))
	_, err = os.Stat(filepath.Join(s.baseDir, "alice-123.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorage_DeleteMissingIsNoop(t *testing.T) {
	s, err := New(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "never-uploaded.png"))
}

func TestStorage_RejectsTraversalKeys(t *testing.T) {
	s, err := New(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	err = s.Upload(context.Background(), "../escape.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage key")
}
