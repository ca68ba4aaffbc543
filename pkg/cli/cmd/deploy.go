package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/airdock/pkg/cli/format"
	"github.com/rzbill/airdock/pkg/compose"
	"github.com/rzbill/airdock/pkg/registry"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build the production images and push them to the registry",
	Args:  cobra.NoArgs,
	RunE:  runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	runner := newComposeRunner(true)

	if err := runner.Build(cmd.Context(), false); err != nil {
		return err
	}
	if err := registryLogin(cmd.Context(), runner); err != nil {
		return err
	}
	if err := runner.Push(cmd.Context()); err != nil {
		return err
	}

	recordEvent("deploy", cfg.RegistryHost)
	fmt.Printf("%s images pushed to %s\n", format.Success("✓"), format.Highlight("%s", cfg.RegistryHost))
	return nil
}

// registryLogin authenticates the Docker CLI against the configured prod
// registry. With no registry configured, or a non-ECR registry whose login is
// managed out of band, it is a no-op.
func registryLogin(ctx context.Context, runner *compose.Runner) error {
	if cfg.RegistryHost == "" || !registry.IsECRHost(cfg.RegistryHost) {
		return nil
	}

	creds, err := registry.NewECRProvider(cfg.RegistryRegion).Resolve(ctx, cfg.RegistryHost)
	if err != nil {
		return err
	}
	return runner.Login(ctx, cfg.RegistryHost, creds.Username, creds.Password)
}
