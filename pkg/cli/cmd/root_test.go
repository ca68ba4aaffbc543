package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownCommandFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"froblicate"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "froblicate")
}

func TestAllCommandsRegistered(t *testing.T) {
	expected := []string{
		"setup", "sync", "up", "down", "restart", "rebuild", "build",
		"status", "logs", "pull", "validate", "deploy",
		"pull-prod", "up-prod", "down-prod", "restart-prod", "validate-prod",
		"prune", "history", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestHelpMentionsBootstrap(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "airdock")
	assert.Contains(t, out.String(), "setup")
}
