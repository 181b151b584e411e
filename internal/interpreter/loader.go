package interpreter

import (
	"fmt"

	"github.com/nyambati/nlufn/internal/config"
	"github.com/nyambati/nlufn/internal/health"
	"github.com/sirupsen/logrus"
)

// NewLoader picks the loader for the configured backend.
func NewLoader(cfg *config.Model, logger *logrus.Entry) (Loader, error) {
	switch cfg.Backend {
	case config.BackendLocal, "":
		return NewLocalLoader(logger), nil
	case config.BackendRemote:
		checker := health.NewHealthChecker(cfg.HealthTimeout, logger)
		return NewRemoteLoader(cfg.Endpoint, checker, logger), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}
}
