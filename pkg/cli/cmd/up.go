package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap the environment and start the stack",
	Args:  cobra.NoArgs,
	RunE:  runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	// The env file and shared resources must exist before any service starts.
	if err := bootstrapEnvironment(cmd.Context()); err != nil {
		return err
	}

	if err := newComposeRunner(false).Up(cmd.Context()); err != nil {
		return err
	}
	recordEvent("up", "")
	fmt.Printf("%s stack is up\n", format.Success("✓"))
	return nil
}
