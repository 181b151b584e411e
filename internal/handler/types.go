package handler

import (
	"context"

	"github.com/nyambati/nlufn/internal/event"
	"github.com/nyambati/nlufn/internal/provider"
	"github.com/sirupsen/logrus"
)

// Greeting is the text parsed on every invocation.
const Greeting = "你好"

// Result keys written by the handler.
const (
	KeyBytes = "bytes"
	KeySay   = "Say"
)

// Response is the enriched mapping returned for one invocation.
type Response map[string]any

type Handler struct {
	provider provider.ProviderInterface
	logger   *logrus.Entry
}

type HandlerInterface interface {
	Handle(ctx context.Context, ev event.Event, c event.Context) (Response, error)
	Invoke(ctx context.Context, payload []byte) ([]byte, error)
}
