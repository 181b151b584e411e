package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/sirupsen/logrus"
)

var _ HealthCheckerInterface = (*HealthChecker)(nil)

func NewHealthChecker(timeout time.Duration, logger *logrus.Entry) *HealthChecker {
	return &HealthChecker{
		client:      &http.Client{Timeout: 2 * time.Second},
		logger:      logger.WithField("component", "health"),
		timeout:     timeout,
		minInterval: 250 * time.Millisecond,
		maxInterval: 5 * time.Second,
	}
}

// IsHealthy reports whether the server root at endpoint answers with a 2xx status.
func (hc *HealthChecker) IsHealthy(ctx context.Context, endpoint string) (bool, error) {
	log := hc.logger.WithField("endpoint", endpoint)

	url := strings.TrimSuffix(endpoint, "/") + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fnerrors.NewHealthCheckFailedError(endpoint, err.Error())
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("failed to perform health check request")
		return false, fnerrors.NewHealthCheckFailedError(endpoint, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		log.Debug("nlu server is healthy")
		return true, nil
	}
	log.WithField("status_code", resp.StatusCode).Warn("nlu server returned unhealthy status")
	return false, fnerrors.NewHealthCheckFailedError(endpoint, resp.Status)
}

// WaitForHealthy polls endpoint with exponential backoff until it is healthy or the
// checker timeout elapses.
func (hc *HealthChecker) WaitForHealthy(ctx context.Context, endpoint string) error {
	log := hc.logger.WithField("endpoint", endpoint)

	timeoutCtx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	b := &backoff.Backoff{
		Min:    hc.minInterval,
		Max:    hc.maxInterval,
		Factor: 2,
	}

	for {
		healthy, err := hc.IsHealthy(timeoutCtx, endpoint)
		if healthy {
			log.Info("nlu server is healthy")
			return nil
		}

		next := b.Duration()
		log.WithError(err).WithField("retry_in", next).Debug("health check attempt failed")

		select {
		case <-timeoutCtx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return fmt.Errorf("health: wait canceled: %w", ctx.Err())
			}
			return fnerrors.NewTimeoutError(endpoint)
		case <-time.After(next):
		}
	}
}
