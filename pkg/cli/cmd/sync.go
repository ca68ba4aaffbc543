package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
	"github.com/rzbill/airdock/pkg/gitsync"
)

// syncCmd represents the sync command (destructive resync of the checkout)
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Discard local changes and reset the checkout to the remote branch",
	Long: `Sync discards ALL local modifications and forcibly resets the deployment
checkout to the configured remote branch. It prompts for confirmation and
refuses to run without an interactive terminal.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	r := gitsync.New(".")

	performed, err := r.Resync(cmd.Context(), cfg.GitRemote, cfg.GitBranch)
	if err != nil {
		return err
	}
	if !performed {
		// Declined confirmation is a successful no-op.
		fmt.Println("Sync cancelled.")
		return nil
	}

	target := fmt.Sprintf("%s/%s", cfg.GitRemote, cfg.GitBranch)
	recordEvent("sync", target)
	fmt.Printf("%s checkout reset to %s\n", format.Success("✓"), format.Highlight("%s", target))
	return nil
}
