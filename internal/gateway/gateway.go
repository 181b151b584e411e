package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/nyambati/nlufn/internal/config"
	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/nyambati/nlufn/internal/event"
	"github.com/nyambati/nlufn/internal/handler"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps the event payload accepted by the gateway.
const maxBodySize = 6 << 20

func NewAPIGateway(cfg *config.Gateway, h handler.HandlerInterface, logger *logrus.Logger) *APIGateway {
	return &APIGateway{
		config:  cfg,
		handler: h,
		metrics: NewMetrics(),
		logger:  logger.WithField("component", "gateway"),
		router:  mux.NewRouter(),
	}
}

func (g *APIGateway) Start(ctx context.Context) error {
	g.logger.Infof("starting gateway on port %s", g.config.Port)
	g.RegisterRoutes()
	return g.createHttpServer(ctx)
}

func (g *APIGateway) RegisterRoutes() {
	stage := path.Join("/", g.config.Stage)
	routes := []struct {
		method  string
		path    string
		handler http.Handler
	}{
		{http.MethodGet, path.Join(stage, "health"), g.handleHealthCheck()},
		{http.MethodGet, path.Join(stage, "metrics"), g.metrics.Handler()},
		{http.MethodPost, path.Join(stage, "invoke"), g.handleInvoke()},
	}

	for _, route := range routes {
		g.logger.WithFields(logrus.Fields{
			"method": route.method,
			"path":   route.path,
		}).Info("registering route")
		g.router.Methods(route.method).Path(route.path).Handler(route.handler)
	}
	g.router.Use(g.loggingMiddleware)
}

func (g *APIGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.router.ServeHTTP(w, r)
}

func (g *APIGateway) handleInvoke() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer r.Body.Close()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				g.metrics.observe(outcomeInvalidEvent, time.Since(start))
				g.logger.WithField("limit", tooLarge.Limit).Warn("request body too large")
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
					Error: fmt.Sprintf("event exceeds %d bytes", tooLarge.Limit),
					Type:  outcomeInvalidEvent,
				})
				return
			}
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		c := g.buildContext(r)
		logger := g.logger.WithField("invoke_id", c[event.KeyFunctionInvokeID])
		logger.Info("received invocation")

		res, err := g.handler.Handle(r.Context(), event.Decode(body), c)
		if err != nil {
			status, outcome := classify(err)
			g.metrics.observe(outcome, time.Since(start))
			logger.WithError(err).WithField("status_code", status).Warn("invocation failed")
			writeJSON(w, status, errorResponse{Error: err.Error(), Type: outcome})
			return
		}

		g.metrics.observe(outcomeSuccess, time.Since(start))
		writeJSON(w, http.StatusOK, res)
		logger.WithField("duration", time.Since(start)).Info("invocation completed")
	}
}

// buildContext reads the context headers and fills in the function name and a fresh
// invoke id when the caller did not supply them.
func (g *APIGateway) buildContext(r *http.Request) event.Context {
	c := event.FromHeaders(r.Header)
	if _, ok := c[event.KeyFunctionName]; !ok && g.config.FunctionName != "" {
		c[event.KeyFunctionName] = g.config.FunctionName
	}
	if _, ok := c[event.KeyFunctionInvokeID]; !ok {
		c[event.KeyFunctionInvokeID] = uuid.NewString()
	}
	return c
}

func classify(err error) (int, string) {
	var invalid *fnerrors.InvalidEventError
	var decode *fnerrors.DecodeError
	switch {
	case errors.As(err, &invalid), errors.As(err, &decode):
		return http.StatusBadRequest, outcomeInvalidEvent
	default:
		return http.StatusBadGateway, outcomeModelError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (g *APIGateway) createHttpServer(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + g.config.Port,
		Handler:           g.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	g.logger.Info("shutting down gateway")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdown)
}

func (g *APIGateway) handleHealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func (g *APIGateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		g.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remoteAddr": r.RemoteAddr,
			"duration":   time.Since(start),
		}).Debug("handled request")
	})
}
