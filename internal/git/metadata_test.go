package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoMetadata(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:acme/widgets.git"}})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	hash, err := wt.Commit("init", &gogit.CommitOptions{
		AllowEmptyCommits: true,
		Author:            &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	md := RepoMetadata(sub)
	assert.Equal(t, "acme/widgets", md.Repo)
	assert.Equal(t, hash.String(), md.Commit)
	assert.NotEmpty(t, md.Branch)
}

func TestRepoMetadata_NotARepo(t *testing.T) {
	assert.Equal(t, Metadata{}, RepoMetadata(t.TempDir()))
	assert.Equal(t, Metadata{}, RepoMetadata("bad\x00path"))
}

func TestValidateRoot(t *testing.T) {
	dir := t.TempDir()
	abs, err := validateRoot(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	f := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = validateRoot(f)
	assert.Error(t, err)
	_, err = validateRoot(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestShortRepo(t *testing.T) {
	tests := map[string]string{
		"git@github.com:acme/widgets.git":     "acme/widgets",
		"https://github.com/acme/widgets.git": "acme/widgets",
		"https://gitlab.example.com/a/b/c":    "a/b/c",
		"widgets":                             "widgets",
	}
	for in, want := range tests {
		assert.Equal(t, want, shortRepo(in), in)
	}
}
