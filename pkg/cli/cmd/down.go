package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

// downCmd represents the down command
var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the stack and remove its containers",
	Args:  cobra.NoArgs,
	RunE:  runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	if err := newComposeRunner(false).Down(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("%s stack is down\n", format.Success("✓"))
	return nil
}
