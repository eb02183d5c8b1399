// Package docker wraps the official Docker SDK behind a narrow lifecycle
// client. All daemon error conditions relevant to idempotent lifecycle
// commands surface as the typed errors in errors.go.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	containertypes "github.com/docker/docker/api/types/container"
	imageapi "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"

	"github.com/stevedore/stevedore/internal/logging"
)

const (
	reasonAlreadyStopped = "already stopped"
	reasonAlreadyRunning = "already running"
)

// Client is the lifecycle interface consumed by the engine and the commands
type Client interface {
	// StopContainer stops the container, waiting up to timeoutSeconds for a
	// graceful shutdown before the daemon kills it.
	StopContainer(ctx context.Context, id string, timeoutSeconds uint) error
	// StartContainer starts a stopped container.
	StartContainer(ctx context.Context, id string) error
	// RemoveContainer removes the container. Without force, a running
	// container is refused with ErrResourceInUse.
	RemoveContainer(ctx context.Context, id string, force bool) error
	// RemoveImage removes the image. An image still referenced by a
	// container is refused with ErrResourceInUse.
	RemoveImage(ctx context.Context, id string, force bool) error

	ListContainers(ctx context.Context, all bool) ([]Container, error)
	ListImages(ctx context.Context) ([]Image, error)
}

// dockerAPI is the subset of the SDK client the sdkClient needs; tests
// substitute a fake.
type dockerAPI interface {
	ContainerStop(ctx context.Context, containerID string, options containertypes.StopOptions) error
	ContainerStart(ctx context.Context, containerID string, options containertypes.StartOptions) error
	ContainerRemove(ctx context.Context, containerID string, options containertypes.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerList(ctx context.Context, options containertypes.ListOptions) ([]types.Container, error)
	ImageRemove(ctx context.Context, imageID string, options imageapi.RemoveOptions) ([]imageapi.DeleteResponse, error)
	ImageList(ctx context.Context, options imageapi.ListOptions) ([]imageapi.Summary, error)
}

// sdkClient is the production implementation using the official Docker SDK
type sdkClient struct {
	cli dockerAPI
}

// NewClient returns an SDK-backed client using DOCKER_HOST / the default socket.
func NewClient() (Client, error) {
	return NewClientForHost("")
}

// NewClientForHost returns a client for a specific daemon endpoint. host may
// be empty to fall back to the environment.
func NewClientForHost(host string) (Client, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}
	c, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &sdkClient{cli: c}, nil
}

func (s *sdkClient) StopContainer(ctx context.Context, id string, timeoutSeconds uint) error {
	logging.Get().Debug().Str("container", id).Uint("timeout_seconds", timeoutSeconds).Msg("stopping container")
	t := int(timeoutSeconds)
	err := s.cli.ContainerStop(ctx, id, containertypes.StopOptions{Timeout: &t})
	if err := translateAPIError(err, reasonAlreadyStopped); err != nil {
		return err
	}
	return nil
}

func (s *sdkClient) StartContainer(ctx context.Context, id string) error {
	logging.Get().Debug().Str("container", id).Msg("starting container")
	err := s.cli.ContainerStart(ctx, id, containertypes.StartOptions{})
	if err := translateAPIError(err, reasonAlreadyRunning); err != nil {
		return err
	}
	return nil
}

func (s *sdkClient) RemoveContainer(ctx context.Context, id string, force bool) error {
	if !force {
		// Refuse removal of a running container up front; the daemon's own
		// refusal is a 409 but inspecting first gives a precise reason.
		insp, err := s.cli.ContainerInspect(ctx, id)
		if err := translateAPIError(err, ""); err != nil {
			return err
		}
		if insp.State != nil && insp.State.Running {
			logging.Get().Debug().Str("container", id).Msg("refusing to remove running container without force")
			return ErrResourceInUse
		}
	}
	logging.Get().Debug().Str("container", id).Bool("force", force).Msg("removing container")
	err := s.cli.ContainerRemove(ctx, id, containertypes.RemoveOptions{Force: force, RemoveVolumes: false})
	if err := translateAPIError(err, ""); err != nil {
		return err
	}
	return nil
}

func (s *sdkClient) RemoveImage(ctx context.Context, id string, force bool) error {
	logging.Get().Debug().Str("image", id).Bool("force", force).Msg("removing image")
	_, err := s.cli.ImageRemove(ctx, id, imageapi.RemoveOptions{Force: force, PruneChildren: false})
	if err := translateAPIError(err, ""); err != nil {
		return err
	}
	return nil
}

func (s *sdkClient) ListContainers(ctx context.Context, all bool) ([]Container, error) {
	list, err := s.cli.ContainerList(ctx, containertypes.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	out := make([]Container, 0, len(list))
	for _, c := range list {
		out = append(out, Container{
			ID:      c.ID,
			Image:   c.Image,
			ImageID: c.ImageID,
			State:   c.State,
			Status:  c.Status,
			Labels:  c.Labels,
			Names:   c.Names,
		})
	}
	return out, nil
}

func (s *sdkClient) ListImages(ctx context.Context) ([]Image, error) {
	list, err := s.cli.ImageList(ctx, imageapi.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	out := make([]Image, 0, len(list))
	for _, im := range list {
		out = append(out, Image{
			ID:       im.ID,
			RepoTags: im.RepoTags,
			Size:     im.Size,
			Created:  im.Created,
		})
	}
	return out, nil
}
