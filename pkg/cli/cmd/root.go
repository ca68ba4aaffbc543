package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/internal/config"
	"github.com/rzbill/airdock/pkg/cli/format"
	"github.com/rzbill/airdock/pkg/log"
	"github.com/rzbill/airdock/pkg/version"
)

var (
	verbose bool
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "airdock",
	Short: "airdock - deployment automation for a containerized Airflow stack",
	Long: `airdock wraps the day-to-day deployment chores of a Docker Compose
based Airflow stack: it bootstraps the local environment file from its
template, provisions the shared network and database volume, and drives
the container lifecycle (build, up, down, deploy) through docker compose.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is specified, display the help
		if len(args) == 0 {
			cmd.Help()
			return
		}
	},
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", format.Error("✗"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig resolves airdock settings and exports the env file's pairs.
func initConfig() {
	if verbose {
		log.GetDefaultLogger().SetLevel(log.DebugLevel)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", format.Error("✗"), err)
		os.Exit(1)
	}

	if err := cfg.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", format.Error("✗"), err)
		os.Exit(1)
	}
}
