// Package provision ensures the shared Docker resources the stack depends on
// (external network, database volume) exist before any service is started.
package provision

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"

	"github.com/rzbill/airdock/pkg/log"
)

// DockerAPI is the subset of the Docker client used by the provisioner.
type DockerAPI interface {
	NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	VolumeInspect(ctx context.Context, volumeID string) (volume.Volume, error)
	VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error)
	ImagesPrune(ctx context.Context, pruneFilters filters.Args) (image.PruneReport, error)
}

// Validate that the real client satisfies the interface.
var _ DockerAPI = (*client.Client)(nil)

// Action is the provisioning decision for a single resource.
type Action int

const (
	// ActionNone means the resource already exists and nothing was done.
	ActionNone Action = iota
	// ActionCreate means the resource was absent and a create call was issued.
	ActionCreate
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreate:
		return "create"
	default:
		return "unknown"
	}
}

// Plan decides the provisioning action from a prior existence check.
func Plan(exists bool) Action {
	if exists {
		return ActionNone
	}
	return ActionCreate
}

// Provisioner performs idempotent create-if-missing provisioning against the
// Docker daemon.
type Provisioner struct {
	api    DockerAPI
	logger log.Logger
}

// NewProvisioner creates a Provisioner backed by a Docker client configured
// from the environment (DOCKER_HOST etc.) with API version negotiation.
func NewProvisioner(logger log.Logger) (*Provisioner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return NewProvisionerWithAPI(cli, logger), nil
}

// NewProvisionerWithAPI creates a Provisioner with a specific Docker API
// implementation. Used by tests.
func NewProvisionerWithAPI(api DockerAPI, logger log.Logger) *Provisioner {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &Provisioner{
		api:    api,
		logger: logger.WithComponent("provisioner"),
	}
}

// EnsureNetwork makes sure the named Docker network exists, creating it when
// absent. It returns the action taken. A "not found" inspect result triggers
// creation; any other inspect failure is surfaced verbatim.
func (p *Provisioner) EnsureNetwork(ctx context.Context, name string) (Action, error) {
	_, err := p.api.NetworkInspect(ctx, name, network.InspectOptions{})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return ActionNone, &InspectError{Kind: KindNetwork, Name: name, Err: err}
	}

	action := Plan(err == nil)
	if action == ActionNone {
		p.logger.Debug("network already exists", log.Str("name", name))
		return action, nil
	}

	if _, err := p.api.NetworkCreate(ctx, name, network.CreateOptions{Driver: "bridge"}); err != nil {
		return action, fmt.Errorf("failed to create network %s: %w", name, err)
	}
	p.logger.Info("network created", log.Str("name", name))
	return action, nil
}

// EnsureVolume makes sure the named Docker volume exists, creating it when
// absent. Same semantics as EnsureNetwork.
func (p *Provisioner) EnsureVolume(ctx context.Context, name string) (Action, error) {
	_, err := p.api.VolumeInspect(ctx, name)
	if err != nil && !cerrdefs.IsNotFound(err) {
		return ActionNone, &InspectError{Kind: KindVolume, Name: name, Err: err}
	}

	action := Plan(err == nil)
	if action == ActionNone {
		p.logger.Debug("volume already exists", log.Str("name", name))
		return action, nil
	}

	if _, err := p.api.VolumeCreate(ctx, volume.CreateOptions{Name: name}); err != nil {
		return action, fmt.Errorf("failed to create volume %s: %w", name, err)
	}
	p.logger.Info("volume created", log.Str("name", name))
	return action, nil
}

// PruneImages removes unused images. By default only dangling images are
// removed; all=true also removes images not referenced by any container.
func (p *Provisioner) PruneImages(ctx context.Context, all bool) (image.PruneReport, error) {
	pruneFilters := filters.NewArgs(filters.Arg("dangling", fmt.Sprintf("%t", !all)))
	report, err := p.api.ImagesPrune(ctx, pruneFilters)
	if err != nil {
		return image.PruneReport{}, fmt.Errorf("failed to prune images: %w", err)
	}
	p.logger.Info("images pruned",
		log.Int("deleted", len(report.ImagesDeleted)),
		log.F("reclaimed_bytes", report.SpaceReclaimed))
	return report, nil
}
