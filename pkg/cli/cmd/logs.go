package cmd

import (
	"github.com/spf13/cobra"
)

var logsFollow bool

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs [service...]",
	Short: "Tail the stack's logs",
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", true, "Follow log output")
}

func runLogs(cmd *cobra.Command, args []string) error {
	return newComposeRunner(false).Logs(cmd.Context(), logsFollow, args...)
}
