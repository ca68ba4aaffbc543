package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
)

var pruneAll bool

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove unused Docker images",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolVarP(&pruneAll, "all", "a", false, "Remove all unused images, not just dangling ones")
}

func runPrune(cmd *cobra.Command, args []string) error {
	p, err := newProvisioner()
	if err != nil {
		return err
	}

	report, err := p.PruneImages(cmd.Context(), pruneAll)
	if err != nil {
		return err
	}

	fmt.Printf("%s removed %d images, reclaimed %.1f MB\n",
		format.Success("✓"),
		len(report.ImagesDeleted),
		float64(report.SpaceReclaimed)/(1024*1024))
	return nil
}
