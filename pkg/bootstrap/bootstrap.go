// Package bootstrap prepares the local environment file consumed by the
// orchestration stack: it derives the env file from a versioned template and
// fills in the values that must differ per machine (user identity, secret key).
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rzbill/airdock/pkg/crypto"
	"github.com/rzbill/airdock/pkg/log"
)

// Placeholder tokens expected in the config template.
const (
	UserIDPlaceholder    = "<USER_ID>"
	FernetKeyPlaceholder = "<FERNET_KEY>"
)

// Bootstrapper creates and populates the local environment file.
type Bootstrapper struct {
	logger log.Logger

	// Overridable for tests.
	userID      func() string
	generateKey func() (string, error)
}

// Option is a function that configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithLogger sets the logger for the bootstrapper.
func WithLogger(logger log.Logger) Option {
	return func(b *Bootstrapper) {
		b.logger = logger
	}
}

// WithUserID overrides how the invoking user's numeric identity is resolved.
func WithUserID(fn func() string) Option {
	return func(b *Bootstrapper) {
		b.userID = fn
	}
}

// WithKeyGenerator overrides how the secret key is generated.
func WithKeyGenerator(fn func() (string, error)) Option {
	return func(b *Bootstrapper) {
		b.generateKey = fn
	}
}

// New creates a Bootstrapper with the given options.
func New(options ...Option) *Bootstrapper {
	b := &Bootstrapper{
		logger:      log.GetDefaultLogger().WithComponent("bootstrap"),
		userID:      func() string { return strconv.Itoa(os.Getuid()) },
		generateKey: crypto.GenerateFernetKey,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// EnsureConfig makes sure the environment file exists, deriving it from the
// template when absent. It reports whether the file was created by this call.
//
// The file's presence is the idempotence marker: once it exists the call is a
// no-op regardless of its contents, and the file is never regenerated
// automatically.
func (b *Bootstrapper) EnsureConfig(configPath, templatePath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		b.logger.Debug("env file already present", log.Str("path", configPath))
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat env file %s: %w", configPath, err)
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, &MissingTemplateError{Path: templatePath}
		}
		return false, fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write env file %s: %w", configPath, err)
	}

	b.logger.Info("env file created from template",
		log.Str("path", configPath), log.Str("template", templatePath))
	return true, nil
}

// PopulateDynamicValues replaces the placeholder tokens in the environment
// file with machine-specific values: the invoking user's numeric id and a
// freshly generated Fernet key (wrapped in literal quotes). Substitution is
// textual; the file is not parsed as structured config.
func (b *Bootstrapper) PopulateDynamicValues(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", configPath, err)
	}

	content := string(data)
	content = strings.ReplaceAll(content, UserIDPlaceholder, b.userID())

	if strings.Contains(content, FernetKeyPlaceholder) {
		key, err := b.generateKey()
		if err != nil {
			return err
		}
		content = strings.ReplaceAll(content, FernetKeyPlaceholder, `"`+key+`"`)
	}

	if err := writeFileAtomic(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to update env file %s: %w", configPath, err)
	}

	b.logger.Info("env file populated", log.Str("path", configPath))
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination, so no backup artifact is left behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
