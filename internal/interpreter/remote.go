package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/nyambati/nlufn/internal/health"
	"github.com/sirupsen/logrus"
)

var ParsePath = "/model/parse"

type parseRequest struct {
	Text string `json:"text"`
}

func NewRemoteInterpreter(endpoint string, logger *logrus.Entry) *RemoteInterpreter {
	return &RemoteInterpreter{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.WithFields(logrus.Fields{"component": "interpreter", "backend": "remote"}),
	}
}

// NewRemoteLoader returns a Loader that waits for the NLU server at endpoint to become
// healthy and then hands out a client for it. The model path is owned by the server.
func NewRemoteLoader(endpoint string, checker health.HealthCheckerInterface, logger *logrus.Entry) Loader {
	return func(ctx context.Context, path string) (Interpreter, error) {
		remote := NewRemoteInterpreter(endpoint, logger)
		remote.logger.WithField("endpoint", remote.endpoint).Info("waiting for nlu server")
		if err := checker.WaitForHealthy(ctx, remote.endpoint); err != nil {
			return nil, fmt.Errorf("nlu server not ready: %w", err)
		}
		return remote, nil
	}
}

func (r *RemoteInterpreter) Parse(ctx context.Context, text string) (*Result, error) {
	startTime := time.Now()
	url := r.endpoint + ParsePath
	logger := r.logger.WithField("url", url)
	logger.Debug("sending parse request")

	payload, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("remote interpreter failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logger.WithError(err).Error("failed to create http request")
		return nil, fmt.Errorf("remote interpreter failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("failed to send http request")
		var netErr net.Error
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
			return nil, fnerrors.NewTimeoutError(r.endpoint)
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, fmt.Errorf("remote interpreter: request canceled: %w", ctx.Err())
		default:
			return nil, fnerrors.NewConnectionError(r.endpoint)
		}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Error("failed to read response body")
		return nil, fmt.Errorf("remote interpreter: failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.WithField("status_code", resp.StatusCode).Warn("nlu server returned non-2xx response")
		return nil, fnerrors.NewServerInvocationError(r.endpoint, resp.StatusCode, string(body))
	}

	result := &Result{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("remote interpreter: failed to decode parse result: %w", err)
	}
	if result.Entities == nil {
		result.Entities = []Entity{}
	}

	logger.WithField("duration", time.Since(startTime)).Debug("parse request completed")
	return result, nil
}
