package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/internal/config"
	"github.com/rzbill/airdock/pkg/log"
	"github.com/rzbill/airdock/pkg/store"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lifecycle events",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of events to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	s, err := store.Open(path, log.GetDefaultLogger())
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.List(historyLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return nil
	}

	rows := pterm.TableData{{"TIME", "COMMAND", "DETAIL"}}
	for _, event := range events {
		rows = append(rows, []string{
			event.Timestamp.Local().Format(time.RFC3339),
			event.Command,
			event.Detail,
		})
	}

	return pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).
		WithData(rows).
		Render()
}
