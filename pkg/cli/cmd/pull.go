package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// pullCmd represents the pull command
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the stack's images",
	Args:  cobra.NoArgs,
	RunE:  runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	if err := newComposeRunner(false).Pull(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("%s images pulled\n", format.Success("✓"))
	return nil
}
