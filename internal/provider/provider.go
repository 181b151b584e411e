package provider

import (
	"context"
	"sync"
	"time"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/sirupsen/logrus"
)

var _ ProviderInterface = (*Provider)(nil)

func NewProvider(path string, load interpreter.Loader, logger *logrus.Entry) *Provider {
	return &Provider{
		path:   path,
		load:   load,
		status: StatusIdle,
		logger: logger.WithField("component", "provider"),
		mutex:  &sync.Mutex{},
		state:  &sync.RWMutex{},
	}
}

// Get returns the loaded interpreter, loading it on the first call. Concurrent callers
// wait for the same load. A failed load is not remembered; the next call retries.
func (p *Provider) Get(ctx context.Context) (interpreter.Interpreter, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.interpreter != nil {
		return p.interpreter, nil
	}

	start := time.Now()
	logger := p.logger.WithField("path", p.path)
	logger.Info("loading interpreter")
	p.setStatus(StatusLoading)

	interp, err := p.load(ctx, p.path)
	if err != nil {
		p.setStatus(StatusFailed)
		logger.WithError(err).Error("failed to load interpreter")
		return nil, fnerrors.NewExternalModelError("load", err)
	}

	p.interpreter = interp
	p.setStatus(StatusReady)
	logger.WithField("duration", time.Since(start)).Info("interpreter loaded")
	return interp, nil
}

// Status does not wait for an in-flight load.
func (p *Provider) Status() Status {
	p.state.RLock()
	defer p.state.RUnlock()
	return p.status
}

func (p *Provider) setStatus(status Status) {
	p.state.Lock()
	defer p.state.Unlock()
	p.status = status
}

// Close releases the interpreter. The next Get loads it again.
func (p *Provider) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.interpreter == nil {
		return nil
	}

	p.logger.Info("releasing interpreter")
	p.interpreter = nil
	p.setStatus(StatusIdle)
	return nil
}
