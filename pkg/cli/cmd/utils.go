package cmd

import (
	"context"
	"fmt"

	"github.com/rzbill/airdock/internal/config"
	"github.com/rzbill/airdock/pkg/cli/format"
	"github.com/rzbill/airdock/pkg/compose"
	"github.com/rzbill/airdock/pkg/log"
	"github.com/rzbill/airdock/pkg/provision"
	"github.com/rzbill/airdock/pkg/store"
)

// newComposeRunner builds a compose runner for the dev or prod file set.
func newComposeRunner(prod bool) *compose.Runner {
	return compose.NewRunner(compose.Options{
		ProjectName: cfg.ProjectName,
		Files:       cfg.ComposeFiles(prod),
		EnvFile:     cfg.EnvFile,
	}, log.GetDefaultLogger())
}

// newProvisioner connects to the Docker daemon.
func newProvisioner() (*provision.Provisioner, error) {
	return provision.NewProvisioner(log.GetDefaultLogger())
}

// ensureSharedResources provisions the external network and the database
// volume, reporting what was done.
func ensureSharedResources(ctx context.Context, p *provision.Provisioner) error {
	action, err := p.EnsureNetwork(ctx, cfg.NetworkName)
	if err != nil {
		return err
	}
	reportResource("network", cfg.NetworkName, action)

	action, err = p.EnsureVolume(ctx, cfg.VolumeName)
	if err != nil {
		return err
	}
	reportResource("volume", cfg.VolumeName, action)
	return nil
}

func reportResource(kind, name string, action provision.Action) {
	if action == provision.ActionCreate {
		fmt.Printf("%s %s %s created\n", format.Success("✓"), kind, format.Highlight("%s", name))
	} else {
		fmt.Printf("%s %s %s already exists\n", format.Success("✓"), kind, format.Highlight("%s", name))
	}
}

// recordEvent appends a lifecycle event to the local history. Best-effort:
// failures are logged and swallowed so they never fail the command itself.
func recordEvent(command, detail string) {
	logger := log.GetDefaultLogger().WithComponent("history")

	path, err := config.HistoryPath()
	if err != nil {
		logger.Debug("skipping history record", log.Err(err))
		return
	}
	s, err := store.Open(path, log.GetDefaultLogger())
	if err != nil {
		logger.Debug("skipping history record", log.Err(err))
		return
	}
	defer s.Close()

	if err := s.Record(command, detail); err != nil {
		logger.Debug("failed to record event", log.Err(err))
	}
}
