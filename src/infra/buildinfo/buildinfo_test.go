package buildinfo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udin/src/core/domain"
)

func TestManifest_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"udin","version":"0.1.0","private":true}`), 0o644))

	m, err := NewManifest(path).ReadManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Manifest{Name: "udin", Version: "0.1.0"}, m)
}

func TestManifest_ReadFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := NewManifest(filepath.Join(dir, "missing.json")).ReadManifest(context.Background())
	assert.True(t, domain.IsUnavailable(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version":`), 0o644))
	_, err = NewManifest(bad).ReadManifest(context.Background())
	assert.True(t, domain.IsUnavailable(err))
}

func TestDescriptor_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "version.json")
	store := NewDescriptor(path)

	_, err := store.ReadDescriptor(context.Background())
	assert.True(t, domain.IsNotFound(err))

	buildAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	written, err := store.WriteDescriptor(context.Background(), domain.VersionDescriptor{
		Version: "0.1.0", Branch: "main", Commit: "abc", BuildAt: buildAt,
	})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	raw, err := store.ReadDescriptor(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"0.1.0","branch":"main","commit":"abc","build_at":"2026-01-02T03:04:05Z"}`, string(raw))

	var d domain.VersionDescriptor
	require.NoError(t, json.Unmarshal(raw, &d))
	assert.True(t, d.BuildAt.Equal(buildAt))
}

func TestGit_Head(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("udin\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	branch, commit, err := NewGit(sub).Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
	assert.Equal(t, hash.String(), commit)
}

func TestGit_HeadOutsideRepository(t *testing.T) {
	_, _, err := NewGit(t.TempDir()).Head(context.Background())
	assert.Error(t, err)
}
