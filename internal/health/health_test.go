package health

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/h2non/gock"
	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var endpoint = "http://nlu.local:5005"

func newTestChecker(timeout time.Duration) *HealthChecker {
	logger := logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	hc := NewHealthChecker(timeout, logger)
	hc.minInterval = time.Millisecond
	hc.maxInterval = 5 * time.Millisecond
	gock.InterceptClient(hc.client)
	return hc
}

func TestIsHealthy(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       bool
		wantErr    bool
	}{
		{name: "TestHealthyServer", statusCode: http.StatusOK, want: true},
		{name: "TestUnavailableServer", statusCode: http.StatusServiceUnavailable, want: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()
			gock.New(endpoint).Get("/").Reply(tt.statusCode).BodyString("Hello from Rasa")

			hc := newTestChecker(time.Second)
			got, err := hc.IsHealthy(context.Background(), endpoint)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestWaitForHealthyRetries(t *testing.T) {
	defer gock.Off()
	gock.New(endpoint).Get("/").Times(2).Reply(http.StatusServiceUnavailable)
	gock.New(endpoint).Get("/").Reply(http.StatusOK)

	hc := newTestChecker(time.Second)
	err := hc.WaitForHealthy(context.Background(), endpoint)

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestWaitForHealthyTimeout(t *testing.T) {
	defer gock.Off()
	gock.New(endpoint).Get("/").Persist().Reply(http.StatusServiceUnavailable)

	hc := newTestChecker(50 * time.Millisecond)
	err := hc.WaitForHealthy(context.Background(), endpoint)

	var timeoutErr *fnerrors.TimeoutError
	assert.True(t, errors.As(err, &timeoutErr))
}

func TestWaitForHealthyCanceled(t *testing.T) {
	defer gock.Off()
	gock.New(endpoint).Get("/").Persist().Reply(http.StatusServiceUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	hc := newTestChecker(5 * time.Second)
	err := hc.WaitForHealthy(ctx, endpoint)

	assert.ErrorIs(t, err, context.Canceled)
	var timeoutErr *fnerrors.TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
}
