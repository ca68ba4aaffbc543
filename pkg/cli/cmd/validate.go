package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
	"github.com/rzbill/airdock/pkg/compose"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective compose configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateConfig(cmd.Context(), false)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateConfig renders the compose configuration for the dev or prod file
// set and reports the declared services.
func validateConfig(ctx context.Context, prod bool) error {
	rendered, err := newComposeRunner(prod).Config(ctx)
	if err != nil {
		return err
	}

	services, err := compose.ParseServices(rendered)
	if err != nil {
		return err
	}

	fmt.Printf("%s configuration valid (%d services)\n", format.Success("✓"), len(services))
	nameColor := color.New(color.FgCyan)
	for _, svc := range services {
		fmt.Printf("  %s\n", nameColor.Sprint(svc))
	}
	return nil
}
