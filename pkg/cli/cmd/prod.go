package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// Production variants of the lifecycle commands. They run against the prod
// compose file set and, where images are involved, authenticate against the
// configured registry first.

var pullProdCmd = &cobra.Command{
	Use:   "pull-prod",
	Short: "Pull the production images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := newComposeRunner(true)
		if err := registryLogin(cmd.Context(), runner); err != nil {
			return err
		}
		if err := runner.Pull(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("%s production images pulled\n", format.Success("✓"))
		return nil
	},
}

var upProdCmd = &cobra.Command{
	Use:   "up-prod",
	Short: "Bootstrap the environment and start the production stack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootstrapEnvironment(cmd.Context()); err != nil {
			return err
		}
		if err := newComposeRunner(true).Up(cmd.Context()); err != nil {
			return err
		}
		recordEvent("up-prod", "")
		fmt.Printf("%s production stack is up\n", format.Success("✓"))
		return nil
	},
}

var downProdCmd = &cobra.Command{
	Use:   "down-prod",
	Short: "Stop the production stack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newComposeRunner(true).Down(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("%s production stack is down\n", format.Success("✓"))
		return nil
	},
}

var restartProdCmd = &cobra.Command{
	Use:   "restart-prod",
	Short: "Restart the production stack's services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newComposeRunner(true).Restart(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("%s production stack restarted\n", format.Success("✓"))
		return nil
	},
}

var validateProdCmd = &cobra.Command{
	Use:   "validate-prod",
	Short: "Validate the effective production compose configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateConfig(cmd.Context(), true)
	},
}

func init() {
	rootCmd.AddCommand(pullProdCmd)
	rootCmd.AddCommand(upProdCmd)
	rootCmd.AddCommand(downProdCmd)
	rootCmd.AddCommand(restartProdCmd)
	rootCmd.AddCommand(validateProdCmd)
}
