package gitsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte("services: {}\n"), 0o644))
	return dir
}

func newTestResyncer(dir string, confirmed bool, calls *[][]string) *Resyncer {
	return New(dir,
		WithTerminalCheck(func() bool { return true }),
		WithConfirm(func(string) (bool, error) { return confirmed, nil }),
		WithGitRunner(func(_ context.Context, _ string, args ...string) (string, error) {
			*calls = append(*calls, args)
			return "", nil
		}),
	)
}

func TestResyncDeclinedLeavesWorktreeUntouched(t *testing.T) {
	dir := initRepo(t)
	var calls [][]string
	r := newTestResyncer(dir, false, &calls)

	performed, err := r.Resync(context.Background(), "origin", "main")
	require.NoError(t, err, "a declined confirmation is not an error")
	assert.False(t, performed)
	assert.Empty(t, calls, "no git command may run after a declined confirmation")

	data, err := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Equal(t, "services: {}\n", string(data))
}

func TestResyncConfirmedFetchesAndResets(t *testing.T) {
	dir := initRepo(t)
	var calls [][]string
	r := newTestResyncer(dir, true, &calls)

	performed, err := r.Resync(context.Background(), "origin", "main")
	require.NoError(t, err)
	assert.True(t, performed)

	require.Len(t, calls, 2)
	assert.Equal(t, []string{"fetch", "origin"}, calls[0])
	assert.Equal(t, []string{"reset", "--hard", "origin/main"}, calls[1])
}

func TestResyncOutsideRepositoryFails(t *testing.T) {
	var calls [][]string
	r := newTestResyncer(t.TempDir(), true, &calls)

	_, err := r.Resync(context.Background(), "origin", "main")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not a git repository")
	assert.Empty(t, calls)
}

func TestResyncRefusesWithoutTerminal(t *testing.T) {
	dir := initRepo(t)
	prompted := false
	r := New(dir,
		WithTerminalCheck(func() bool { return false }),
		WithConfirm(func(string) (bool, error) {
			prompted = true
			return true, nil
		}),
		WithGitRunner(func(_ context.Context, _ string, _ ...string) (string, error) {
			t.Fatal("git must not run unattended")
			return "", nil
		}),
	)

	_, err := r.Resync(context.Background(), "origin", "main")
	require.Error(t, err)
	assert.ErrorContains(t, err, "interactive terminal")
	assert.False(t, prompted, "must not prompt when stdin is not a terminal")
}
