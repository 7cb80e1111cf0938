package mirror

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDVCMirror_RunsAddThenCommit(t *testing.T) {
	t.Parallel()

	var calls [][]string
	d := NewDVC("dvc", "")
	d.run = func(ctx context.Context, dir, name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}

	path := filepath.Join("models", "v1", "model.bin")
	locator, err := d.Mirror(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "v1/model.bin", locator)
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"dvc", "add", path}, calls[0])
	assert.Equal(t, []string{"dvc", "commit"}, calls[1])
}

func TestDVCMirror_AddFailureStopsCommit(t *testing.T) {
	t.Parallel()

	var calls int
	d := NewDVC("dvc", "")
	d.run = func(ctx context.Context, dir, name string, args ...string) error {
		calls++
		return errors.New("no dvc binary")
	}

	_, err := d.Mirror(context.Background(), "models/v1/model.bin")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDVCInit_SkipsWhenRepoExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".dvc"), 0o755))

	d := NewDVC("dvc", dir)
	d.run = func(ctx context.Context, dir, name string, args ...string) error {
		t.Fatal("runner should not be called when .dvc exists")
		return nil
	}

	d.Init(context.Background())
}

func TestNoopMirror(t *testing.T) {
	t.Parallel()

	locator, err := Noop{}.Mirror(context.Background(), "models/v1/model.bin")
	require.NoError(t, err)
	assert.Empty(t, locator)
}
