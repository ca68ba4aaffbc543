package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// rebuildCmd represents the rebuild command (full rebuild and restart)
var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the stack's images from scratch and start it",
	Args:  cobra.NoArgs,
	RunE:  runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	runner := newComposeRunner(false)

	if err := runner.Build(cmd.Context(), true); err != nil {
		return err
	}
	if err := bootstrapEnvironment(cmd.Context()); err != nil {
		return err
	}
	if err := runner.Up(cmd.Context()); err != nil {
		return err
	}
	recordEvent("rebuild", "")
	fmt.Printf("%s stack rebuilt and up\n", format.Success("✓"))
	return nil
}
