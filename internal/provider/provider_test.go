package provider_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/nyambati/nlufn/internal/mocks"
	"github.com/nyambati/nlufn/internal/provider"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})

func TestProviderLoadsOnce(t *testing.T) {
	interp := mocks.NewMockInterpreter(gomock.NewController(t))

	var loads atomic.Int32
	load := func(ctx context.Context, path string) (interpreter.Interpreter, error) {
		loads.Add(1)
		assert.Equal(t, "models/", path)
		return interp, nil
	}

	p := provider.NewProvider("models/", load, logger)
	assert.Equal(t, provider.StatusIdle, p.Status())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Get(context.Background())
			assert.NoError(t, err)
			assert.Same(t, interp, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, provider.StatusReady, p.Status())
}

func TestProviderRetriesAfterFailure(t *testing.T) {
	interp := mocks.NewMockInterpreter(gomock.NewController(t))
	cause := errors.New("model directory missing")

	calls := 0
	load := func(ctx context.Context, path string) (interpreter.Interpreter, error) {
		calls++
		if calls == 1 {
			return nil, cause
		}
		return interp, nil
	}

	p := provider.NewProvider("models/", load, logger)

	_, err := p.Get(context.Background())
	var modelErr *fnerrors.ExternalModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, "load", modelErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, provider.StatusFailed, p.Status())

	got, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, interp, got)
	assert.Equal(t, 2, calls)
}

func TestProviderCloseReloads(t *testing.T) {
	calls := 0
	load := func(ctx context.Context, path string) (interpreter.Interpreter, error) {
		calls++
		return mocks.NewMockInterpreter(gomock.NewController(t)), nil
	}

	p := provider.NewProvider("models/", load, logger)

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.Equal(t, provider.StatusIdle, p.Status())

	second, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestProviderStatusDuringLoad(t *testing.T) {
	interp := mocks.NewMockInterpreter(gomock.NewController(t))

	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context, path string) (interpreter.Interpreter, error) {
		close(started)
		<-release
		return interp, nil
	}

	p := provider.NewProvider("models/", load, logger)

	done := make(chan error, 1)
	go func() {
		_, err := p.Get(context.Background())
		done <- err
	}()

	<-started
	assert.Equal(t, provider.StatusLoading, p.Status())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, provider.StatusReady, p.Status())
}
