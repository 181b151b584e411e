package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nyambati/nlufn/internal/config"
	"github.com/nyambati/nlufn/internal/event"
	"github.com/nyambati/nlufn/internal/gateway"
	"github.com/nyambati/nlufn/internal/handler"
	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/nyambati/nlufn/internal/mocks"
	"github.com/nyambati/nlufn/internal/provider"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var greeting = &interpreter.Result{
	Text:     handler.Greeting,
	Intent:   interpreter.Intent{Name: "greet", Confidence: 1},
	Entities: []interpreter.Entity{},
}

func newGateway(t *testing.T, parseErr error) *gateway.APIGateway {
	t.Helper()
	logger := &logrus.Logger{Out: io.Discard}
	entry := logrus.NewEntry(logger)

	interp := mocks.NewMockInterpreter(gomock.NewController(t))
	if parseErr != nil {
		interp.EXPECT().Parse(gomock.Any(), handler.Greeting).Return(nil, parseErr).AnyTimes()
	} else {
		interp.EXPECT().Parse(gomock.Any(), handler.Greeting).Return(greeting, nil).AnyTimes()
	}

	load := func(ctx context.Context, path string) (interpreter.Interpreter, error) {
		return interp, nil
	}
	h := handler.NewHandler(provider.NewProvider("models/", load, entry), entry)

	cfg := &config.Gateway{Port: "0", Stage: "v1", FunctionName: "greeter"}
	g := gateway.NewAPIGateway(cfg, h, logger)
	g.RegisterRoutes()
	return g
}

func TestInvoke(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		headers    map[string]string
		statusCode int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "TestStructuredEvent",
			body:       `{"a": 1}`,
			headers:    map[string]string{event.HeaderMessageTopic: "t/hi", event.HeaderFunctionInvokeID: "id-1"},
			statusCode: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(1), body["a"])
				assert.Equal(t, "t/hi", body["messageTopic"])
				assert.Equal(t, "greeter", body["functionName"])
				assert.Equal(t, "id-1", body["functionInvokeID"])
				assert.Contains(t, body, "Say")
				assert.NotContains(t, body, "messageQOS")
			},
		},
		{
			name:       "TestRawEventGetsInvokeID",
			body:       "hello",
			headers:    map[string]string{event.HeaderFunctionName: "custom"},
			statusCode: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "hello", body["bytes"])
				assert.Equal(t, "custom", body["functionName"])
				assert.NotEmpty(t, body["functionInvokeID"])
			},
		},
		{
			name:       "TestUpstreamError",
			body:       `{"err": "sensor offline"}`,
			statusCode: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "sensor offline", body["error"])
				assert.Equal(t, "invalid_event", body["type"])
			},
		},
		{
			name:       "TestInvalidUTF8",
			body:       "ok\xff",
			statusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(t, nil)

			req := httptest.NewRequest(http.MethodPost, "/v1/invoke", strings.NewReader(tt.body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			g.ServeHTTP(rec, req)

			require.Equal(t, tt.statusCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := map[string]any{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestInvokeBodyTooLarge(t *testing.T) {
	g := newGateway(t, nil)

	body := `{"a":"` + strings.Repeat("x", 6<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/invoke", strings.NewReader(body))
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	res := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "invalid_event", res["type"])
	assert.NotContains(t, res, "bytes")
}

func TestInvokeModelFailure(t *testing.T) {
	g := newGateway(t, errors.New("server unavailable"))

	req := httptest.NewRequest(http.MethodPost, "/v1/invoke", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	g := newGateway(t, nil)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/invoke", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nlufn_invocations_total{outcome="success"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	g := newGateway(t, nil)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/invoke", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
