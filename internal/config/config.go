// Package config holds airdock's own settings: file locations, resource
// names and deployment targets. Settings come from defaults, an optional
// ~/.airdock/config.yaml and AIRDOCK_-prefixed environment variables. The
// stack's runtime parameters live in the env file, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults for the shared Docker resources.
const (
	DefaultNetworkName = "web"
	DefaultVolumeName  = "airflow-database-volume"
)

// Config is the resolved airdock configuration.
type Config struct {
	// ProjectName is the compose project name.
	ProjectName string `mapstructure:"project_name"`

	// EnvFile is the environment file consumed by compose.
	EnvFile string `mapstructure:"env_file"`

	// TemplateFile is the versioned template the env file is derived from.
	TemplateFile string `mapstructure:"template_file"`

	// ComposeFile is the base compose file.
	ComposeFile string `mapstructure:"compose_file"`

	// ProdComposeFile is layered on top of ComposeFile for prod commands.
	ProdComposeFile string `mapstructure:"prod_compose_file"`

	// NetworkName is the shared external Docker network.
	NetworkName string `mapstructure:"network_name"`

	// VolumeName is the shared database volume.
	VolumeName string `mapstructure:"volume_name"`

	// GitRemote and GitBranch name the reference a destructive resync
	// resets to.
	GitRemote string `mapstructure:"git_remote"`
	GitBranch string `mapstructure:"git_branch"`

	// RegistryHost is the production image registry (empty disables login).
	RegistryHost string `mapstructure:"registry_host"`

	// RegistryRegion optionally overrides the region derived from the host.
	RegistryRegion string `mapstructure:"registry_region"`
}

// Load resolves the configuration from defaults, the optional config file
// and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("project_name", "airflow")
	v.SetDefault("env_file", ".env")
	v.SetDefault("template_file", ".env.template")
	v.SetDefault("compose_file", "docker-compose.yml")
	v.SetDefault("prod_compose_file", "docker-compose.prod.yml")
	v.SetDefault("network_name", DefaultNetworkName)
	v.SetDefault("volume_name", DefaultVolumeName)
	v.SetDefault("git_remote", "origin")
	v.SetDefault("git_branch", "main")
	v.SetDefault("registry_host", "")
	v.SetDefault("registry_region", "")

	v.SetEnvPrefix("AIRDOCK")
	v.AutomaticEnv()

	// The resource names predate the AIRDOCK_ prefix and are also honored
	// under their historical names.
	_ = v.BindEnv("network_name", "AIRDOCK_NETWORK_NAME", "EXTERNAL_NETWORK_NAME")
	_ = v.BindEnv("volume_name", "AIRDOCK_VOLUME_NAME", "POSTGRES_EXTERNAL_VOLUME_NAME")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".airdock"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Missing config file is fine; a malformed one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ComposeFiles returns the compose file set for the dev or prod variant.
func (c *Config) ComposeFiles(prod bool) []string {
	if prod {
		return []string{c.ComposeFile, c.ProdComposeFile}
	}
	return []string{c.ComposeFile}
}

// LoadEnvFile exports the env file's KEY=VALUE pairs into the process
// environment. A missing env file is not an error: the pairs only apply once
// bootstrap has produced the file.
func (c *Config) LoadEnvFile() error {
	if _, err := os.Stat(c.EnvFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(c.EnvFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", c.EnvFile, err)
	}
	return nil
}

// HistoryPath returns the location of the local event history database.
func HistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".airdock", "history"), nil
}
