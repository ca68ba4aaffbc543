package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/bootstrap"
	"github.com/rzbill/airdock/pkg/cli/format"
)

// setupCmd represents the setup command (environment bootstrap)
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Bootstrap the local environment: env file, shared network and volume",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	if err := bootstrapEnvironment(cmd.Context()); err != nil {
		return err
	}
	recordEvent("setup", "")
	fmt.Printf("%s environment ready\n", format.Success("✓"))
	return nil
}

// bootstrapEnvironment runs the full bootstrap sequence: derive the env file
// from its template (populating placeholders only on first creation) and
// ensure the shared Docker resources exist. Safe to repeat.
func bootstrapEnvironment(ctx context.Context) error {
	b := bootstrap.New()
	created, err := b.EnsureConfig(cfg.EnvFile, cfg.TemplateFile)
	if err != nil {
		return err
	}
	if created {
		if err := b.PopulateDynamicValues(cfg.EnvFile); err != nil {
			return err
		}
		fmt.Printf("%s env file %s created from %s\n",
			format.Success("✓"), format.Highlight("%s", cfg.EnvFile), cfg.TemplateFile)
	} else {
		fmt.Printf("%s env file %s already present\n",
			format.Success("✓"), format.Highlight("%s", cfg.EnvFile))
	}

	p, err := newProvisioner()
	if err != nil {
		return err
	}
	return ensureSharedResources(ctx, p)
}
