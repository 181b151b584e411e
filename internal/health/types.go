//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_health.go -package=mocks HealthCheckerInterface

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type HealthChecker struct {
	client      *http.Client
	logger      *logrus.Entry
	timeout     time.Duration
	minInterval time.Duration
	maxInterval time.Duration
}

type HealthCheckerInterface interface {
	WaitForHealthy(ctx context.Context, endpoint string) error
	IsHealthy(ctx context.Context, endpoint string) (bool, error)
}
