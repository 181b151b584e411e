package runtime

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	fnerrors "github.com/nyambati/nlufn/internal/errors"
	v1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sirupsen/logrus"
)

const (
	InternalPort = "5005"
	ModelMount   = "/app/models"
	OS           = "linux"
	NetworkName  = "nlufn-network"
	Label        = "nlufn"
)

var _ RuntimeInterface = (*Runtime)(nil)

func NewRuntime(logger *logrus.Entry) (*Runtime, error) {
	client, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &Runtime{
		client: client,
		logger: logger.WithField("component", "runtime"),
	}, nil
}

// StartServer pulls the NLU server image when missing, creates a container with the
// model store mounted read-only and starts it. It returns the container ID.
func (r *Runtime) StartServer(ctx context.Context, config *ServerConfig) (containerID string, err error) {
	if err := validateServerConfig(config); err != nil {
		return "", err
	}

	if err = r.pullImage(ctx, config.Image, config.Architecture); err != nil {
		return "", fmt.Errorf("pulling image failed: %w", err)
	}

	containerID, err = r.createContainer(ctx, config)
	if err != nil {
		return "", fmt.Errorf("creating container failed: %w", err)
	}

	if err = r.startContainer(ctx, containerID); err != nil {
		return "", fmt.Errorf("starting container failed: %w", err)
	}

	return containerID, nil
}

func validateServerConfig(config *ServerConfig) error {
	switch {
	case config == nil:
		return fnerrors.NewRuntimeConfigError("server config is nil")
	case strings.TrimSpace(config.Name) == "":
		return fnerrors.NewRuntimeConfigError("server name is empty")
	case strings.TrimSpace(config.Image) == "":
		return fnerrors.NewRuntimeConfigError("image field is empty")
	case strings.TrimSpace(config.ModelPath) == "":
		return fnerrors.NewRuntimeConfigError("model path is empty")
	case config.Port == "":
		return fnerrors.NewRuntimeConfigError("server port is empty")
	}
	return nil
}

func (r *Runtime) pullImage(ctx context.Context, imageName, arch string) error {
	imageName = strings.TrimSpace(imageName)
	logger := r.logger.WithField("image", imageName)

	images, err := r.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}

	for _, img := range images {
		if slices.Contains(img.RepoTags, imageName) {
			logger.Debug("image already present")
			return nil
		}
	}

	logger.Info("pulling image")
	reader, err := r.client.ImagePull(ctx, imageName, image.PullOptions{
		Platform: platformString(arch),
	})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}

	defer reader.Close()

	// Docker only completes the pull once the progress stream is consumed.
	_, _ = io.Copy(io.Discard, reader)
	logger.Info("image pulled successfully")
	return nil
}

func (r *Runtime) createContainer(ctx context.Context, config *ServerConfig) (string, error) {
	if err := r.CleanContainerEnvironment(ctx, config.Name); err != nil {
		return "", fmt.Errorf("failed to clean container environment: %w", err)
	}

	absModelPath, err := filepath.Abs(config.ModelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve model path: %w", err)
	}

	containerConfig, hostConfig := buildContainerConfig(config, absModelPath)

	if err := r.createNetwork(ctx); err != nil {
		return "", fmt.Errorf("failed to create network: %w", err)
	}

	networkingConfig := &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{
			NetworkName: {
				NetworkID: NetworkName,
			},
		},
	}

	resp, err := r.client.ContainerCreate(
		ctx,
		containerConfig,
		hostConfig,
		networkingConfig,
		toV1Platform(config.Architecture),
		fmt.Sprintf("%s-%s", config.Name, uuid.NewString()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	return resp.ID, nil
}

// buildContainerConfig maps a ServerConfig onto the Docker container and host configs.
func buildContainerConfig(config *ServerConfig, modelPath string) (*container.Config, *container.HostConfig) {
	port := nat.Port(InternalPort + "/tcp")

	containerConfig := &container.Config{
		Image:        config.Image,
		Cmd:          config.Cmd,
		Env:          formatEnvVars(config.Environment),
		ExposedPorts: nat.PortSet{port: struct{}{}},
		Labels: map[string]string{
			Label:           "true",
			Label + ".name": config.Name,
		},
	}

	hostConfig := &container.HostConfig{
		Mounts: []mount.Mount{
			{
				Type:     mount.TypeBind,
				Source:   modelPath,
				Target:   ModelMount,
				ReadOnly: true,
			},
		},
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{
				{
					HostIP:   "0.0.0.0",
					HostPort: config.Port,
				},
			},
		},
	}

	return containerConfig, hostConfig
}

func toV1Platform(arch string) *v1.Platform {
	return &v1.Platform{
		OS:           OS,
		Architecture: arch,
	}
}

func platformString(arch string) string {
	if arch == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", OS, arch)
}

// formatEnvVars turns {"FOO": "bar"} into []string{"FOO=bar"}, sorted by key.
func formatEnvVars(env map[string]string) []string {
	variables := make([]string, 0, len(env))
	for key, value := range env {
		variables = append(variables, fmt.Sprintf("%s=%s", key, value))
	}
	slices.Sort(variables)
	return variables
}

func (r *Runtime) createNetwork(ctx context.Context) error {
	networks, err := r.client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	for _, n := range networks {
		if n.Name == NetworkName {
			return nil
		}
	}

	_, err = r.client.NetworkCreate(ctx, NetworkName, network.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create network: %w", err)
	}

	r.logger.WithField("network", NetworkName).Info("network created successfully")
	return nil
}

func (r *Runtime) startContainer(ctx context.Context, containerID string) error {
	logger := r.logger.WithField("container_id", containerID)
	logger.Info("starting container")
	if err := r.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return fmt.Errorf("error starting container: %w", err)
	}
	logger.Info("container started successfully")
	return nil
}

// StopServer stops the container, giving it five seconds to exit. A missing container
// is not an error.
func (r *Runtime) StopServer(ctx context.Context, containerID string) error {
	stopTimeout := 5
	logger := r.logger.WithField("container_id", containerID)
	logger.Info("stopping container")

	if err := r.client.ContainerStop(ctx, containerID, container.StopOptions{
		Timeout: &stopTimeout,
	}); err != nil {
		if errdefs.IsNotFound(err) {
			logger.Warn("container not found, ignoring stop")
			return nil
		}
		return fmt.Errorf("failed to stop container: %w", err)
	}

	logger.Info("container stopped successfully")
	return nil
}

func (r *Runtime) DeleteServer(ctx context.Context, containerID string) error {
	logger := r.logger.WithField("container_id", containerID)
	logger.Info("deleting container")

	err := r.client.ContainerRemove(ctx, containerID, container.RemoveOptions{
		Force: true,
	})
	if err != nil {
		if errdefs.IsNotFound(err) {
			logger.Warn("container not found, ignoring delete")
			return nil
		}
		return fmt.Errorf("failed to delete container: %w", err)
	}

	logger.Info("container deleted successfully")
	return nil
}

// CleanContainerEnvironment removes every container, running or not, that was
// started for the server called name.
func (r *Runtime) CleanContainerEnvironment(ctx context.Context, name string) error {
	summary, err := r.client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", Label+".name="+name)),
	})
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	for _, c := range summary {
		if c.State == "running" {
			if err := r.StopServer(ctx, c.ID); err != nil {
				return fmt.Errorf("failed to stop container %s: %w", c.ID, err)
			}
		}
		if err := r.DeleteServer(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete container %s: %w", c.ID, err)
		}
	}

	return nil
}
