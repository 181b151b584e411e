package gateway

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nyambati/nlufn/internal/config"
	"github.com/nyambati/nlufn/internal/handler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type GatewayInterface interface {
	Start(ctx context.Context) error
	RegisterRoutes()
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

type APIGateway struct {
	config  *config.Gateway
	handler handler.HandlerInterface
	metrics *Metrics
	logger  *logrus.Entry
	router  *mux.Router
}

type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    prometheus.Histogram
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}
