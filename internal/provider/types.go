package provider

import (
	"context"
	"sync"

	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/sirupsen/logrus"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Provider holds the process-wide interpreter, loaded on first use.
type Provider struct {
	path        string
	load        interpreter.Loader
	interpreter interpreter.Interpreter
	status      Status
	logger      *logrus.Entry
	mutex       *sync.Mutex
	state       *sync.RWMutex
}

type ProviderInterface interface {
	Get(ctx context.Context) (interpreter.Interpreter, error)
	Status() Status
	Close() error
}
