package provision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDockerAPI implements DockerAPI for tests.
type fakeDockerAPI struct {
	networks map[string]bool
	volumes  map[string]bool

	inspectErr error

	networkCreates int
	volumeCreates  int
	pruneFilters   filters.Args
}

func newFakeDockerAPI() *fakeDockerAPI {
	return &fakeDockerAPI{
		networks: make(map[string]bool),
		volumes:  make(map[string]bool),
	}
}

func (f *fakeDockerAPI) NetworkInspect(_ context.Context, name string, _ network.InspectOptions) (network.Inspect, error) {
	if f.inspectErr != nil {
		return network.Inspect{}, f.inspectErr
	}
	if !f.networks[name] {
		return network.Inspect{}, fmt.Errorf("network %s: %w", name, cerrdefs.ErrNotFound)
	}
	return network.Inspect{Name: name}, nil
}

func (f *fakeDockerAPI) NetworkCreate(_ context.Context, name string, _ network.CreateOptions) (network.CreateResponse, error) {
	f.networkCreates++
	f.networks[name] = true
	return network.CreateResponse{ID: "net-" + name}, nil
}

func (f *fakeDockerAPI) VolumeInspect(_ context.Context, name string) (volume.Volume, error) {
	if f.inspectErr != nil {
		return volume.Volume{}, f.inspectErr
	}
	if !f.volumes[name] {
		return volume.Volume{}, fmt.Errorf("volume %s: %w", name, cerrdefs.ErrNotFound)
	}
	return volume.Volume{Name: name}, nil
}

func (f *fakeDockerAPI) VolumeCreate(_ context.Context, options volume.CreateOptions) (volume.Volume, error) {
	f.volumeCreates++
	f.volumes[options.Name] = true
	return volume.Volume{Name: options.Name}, nil
}

func (f *fakeDockerAPI) ImagesPrune(_ context.Context, pruneFilters filters.Args) (image.PruneReport, error) {
	f.pruneFilters = pruneFilters
	return image.PruneReport{SpaceReclaimed: 42}, nil
}

func TestPlan(t *testing.T) {
	assert.Equal(t, ActionNone, Plan(true))
	assert.Equal(t, ActionCreate, Plan(false))
	assert.Equal(t, "none", ActionNone.String())
	assert.Equal(t, "create", ActionCreate.String())
}

func TestEnsureNetworkCreatesWhenAbsent(t *testing.T) {
	api := newFakeDockerAPI()
	p := NewProvisionerWithAPI(api, nil)

	action, err := p.EnsureNetwork(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, action)
	assert.Equal(t, 1, api.networkCreates)
}

func TestEnsureNetworkExistingPerformsNoCreate(t *testing.T) {
	api := newFakeDockerAPI()
	api.networks["web"] = true
	p := NewProvisionerWithAPI(api, nil)

	action, err := p.EnsureNetwork(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, 0, api.networkCreates, "existing network must not trigger a create call")
}

func TestEnsureNetworkInspectFailureIsFatal(t *testing.T) {
	api := newFakeDockerAPI()
	api.inspectErr = errors.New("permission denied while trying to connect to the Docker daemon")
	p := NewProvisionerWithAPI(api, nil)

	_, err := p.EnsureNetwork(context.Background(), "web")
	require.Error(t, err)
	assert.True(t, IsInspectError(err))
	assert.Equal(t, 0, api.networkCreates, "a non-not-found inspect failure must not be treated as absence")
}

func TestEnsureVolumeIdempotent(t *testing.T) {
	api := newFakeDockerAPI()
	p := NewProvisionerWithAPI(api, nil)

	action, err := p.EnsureVolume(context.Background(), "airflow-database-volume")
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, action)

	action, err = p.EnsureVolume(context.Background(), "airflow-database-volume")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, 1, api.volumeCreates)
}

func TestEnsureVolumeInspectFailureIsFatal(t *testing.T) {
	api := newFakeDockerAPI()
	api.inspectErr = errors.New("daemon unavailable")
	p := NewProvisionerWithAPI(api, nil)

	_, err := p.EnsureVolume(context.Background(), "data")
	require.Error(t, err)

	var ie *InspectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindVolume, ie.Kind)
	assert.Equal(t, "data", ie.Name)
	assert.ErrorContains(t, err, "daemon unavailable")
}

func TestPruneImagesFilters(t *testing.T) {
	api := newFakeDockerAPI()
	p := NewProvisionerWithAPI(api, nil)

	_, err := p.PruneImages(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, api.pruneFilters.Get("dangling"))

	_, err = p.PruneImages(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, api.pruneFilters.Get("dangling"))
}
