package runtime

import (
	"context"

	"github.com/docker/docker/client"
	"github.com/sirupsen/logrus"
)

type Runtime struct {
	client *client.Client
	logger *logrus.Entry
}

// ServerConfig describes the NLU server container.
type ServerConfig struct {
	Name         string
	Image        string
	Architecture string
	ModelPath    string
	Cmd          []string
	Environment  map[string]string
	Port         string
}

type RuntimeInterface interface {
	StartServer(ctx context.Context, config *ServerConfig) (containerID string, err error)
	StopServer(ctx context.Context, containerID string) error
	DeleteServer(ctx context.Context, containerID string) error
	CleanContainerEnvironment(ctx context.Context, name string) error
}
