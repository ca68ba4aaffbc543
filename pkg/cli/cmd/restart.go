package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// restartCmd represents the restart command
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the stack's services",
	Args:  cobra.NoArgs,
	RunE:  runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	if err := newComposeRunner(false).Restart(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("%s stack restarted\n", format.Success("✓"))
	return nil
}
