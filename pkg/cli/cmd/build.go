package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

var buildNoCache bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the stack's images",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Build without using the image cache")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := newComposeRunner(false).Build(cmd.Context(), buildNoCache); err != nil {
		return err
	}
	fmt.Printf("%s images built\n", format.Success("✓"))
	return nil
}
