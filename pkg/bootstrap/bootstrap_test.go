package bootstrap

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, content string) (configPath, templatePath string) {
	t.Helper()
	configPath = filepath.Join(dir, ".env")
	templatePath = filepath.Join(dir, ".env.template")
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0o644))
	return configPath, templatePath
}

func TestEnsureConfigCreatesFromTemplate(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir, "AIRFLOW_UID=<USER_ID>\n")

	b := New()
	created, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "AIRFLOW_UID=<USER_ID>\n", string(data))
}

func TestEnsureConfigIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir, "KEY=value\n")

	b := New()
	created, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	require.True(t, created)

	first, err := os.ReadFile(configPath)
	require.NoError(t, err)

	// Mutate the template; a second call must not touch the env file.
	require.NoError(t, os.WriteFile(templatePath, []byte("KEY=other\n"), 0o644))

	created, err = b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	assert.False(t, created)

	second, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, first, second, "env file must be byte-identical after second call")
}

func TestEnsureConfigMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".env")
	templatePath := filepath.Join(dir, ".env.template")

	b := New()
	created, err := b.EnsureConfig(configPath, templatePath)
	assert.False(t, created)
	require.Error(t, err)
	assert.True(t, IsMissingTemplateError(err))

	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr), "no env file may be created on failure")
}

func TestPopulateDynamicValues(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir,
		"AIRFLOW_UID=<USER_ID>\nFERNET_KEY=<FERNET_KEY>\nSTATIC=unchanged\n")

	b := New(
		WithUserID(func() string { return "1234" }),
		WithKeyGenerator(func() (string, error) { return "test-key", nil }),
	)
	created, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, b.PopulateDynamicValues(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "AIRFLOW_UID=1234")
	assert.Contains(t, content, `FERNET_KEY="test-key"`)
	assert.Contains(t, content, "STATIC=unchanged")
	assert.NotContains(t, content, UserIDPlaceholder)
	assert.NotContains(t, content, FernetKeyPlaceholder)
}

func TestPopulateDynamicValuesRealUserID(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir, "AIRFLOW_UID=<USER_ID>\n")

	b := New()
	_, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	require.NoError(t, b.PopulateDynamicValues(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AIRFLOW_UID="+strconv.Itoa(os.Getuid()))
	assert.NotContains(t, string(data), UserIDPlaceholder)
}

func TestPopulateDynamicValuesLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir, "FERNET_KEY=<FERNET_KEY>\n")

	b := New()
	_, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	require.NoError(t, b.PopulateDynamicValues(configPath))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{".env", ".env.template"}, names)
}

func TestPopulateDynamicValuesNoPlaceholders(t *testing.T) {
	dir := t.TempDir()
	configPath, templatePath := writeTemplate(t, dir, "KEY=value\n")

	keyGenCalled := false
	b := New(WithKeyGenerator(func() (string, error) {
		keyGenCalled = true
		return "", nil
	}))
	_, err := b.EnsureConfig(configPath, templatePath)
	require.NoError(t, err)
	require.NoError(t, b.PopulateDynamicValues(configPath))

	assert.False(t, keyGenCalled, "no key should be generated when the token is absent")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "KEY=value\n", string(data))
}
