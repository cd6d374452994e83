package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasbreak/internal/testutil"
	"github.com/erraggy/oasbreak/oaserrors"
	"github.com/erraggy/oasbreak/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("loads yaml", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)
		src := NewFileSource(path, parser.FormatAuto)
		assert.Equal(t, path, src.String())

		doc, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, "Pet Store", doc.Info("title"))
	})

	t.Run("missing file", func(t *testing.T) {
		src := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"), parser.FormatAuto)
		_, err := src.Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrNotFound))
		assert.True(t, errors.Is(err, oaserrors.ErrLoad))
	})

	t.Run("directory is a read failure", func(t *testing.T) {
		src := NewFileSource(t.TempDir(), parser.FormatYAML)
		_, err := src.Load(context.Background())
		require.Error(t, err)

		var le *oaserrors.LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, oaserrors.LoadErrorRead, le.Kind)
	})

	t.Run("parse failure", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "openapi.json", "{not json")
		_, err := NewFileSource(path, parser.FormatAuto).Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))

		var le *oaserrors.LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, oaserrors.LoadErrorParse, le.Kind)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)
		_, err := NewFileSource(path, parser.FormatAuto).Load(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFileSourceUnreadable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.PetStoreYAML)
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := NewFileSource(path, parser.FormatAuto).Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, oaserrors.ErrNotFound))
	assert.True(t, errors.Is(err, oaserrors.ErrLoad))
}

var _ Source = (*FileSource)(nil)
var _ Source = (*GitHubSource)(nil)
