package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"unicode/utf8"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/nyambati/nlufn/internal/event"
	"github.com/nyambati/nlufn/internal/provider"
	"github.com/sirupsen/logrus"
)

var _ HandlerInterface = (*Handler)(nil)

func NewHandler(p provider.ProviderInterface, logger *logrus.Entry) *Handler {
	return &Handler{
		provider: p,
		logger:   logger.WithField("component", "handler"),
	}
}

// Handle normalizes ev into a fresh Response, copies the recognized keys of c and
// stores the parse of Greeting under "Say".
func (h *Handler) Handle(ctx context.Context, ev event.Event, c event.Context) (Response, error) {
	logger := h.logger.WithField("event_kind", ev.Kind.String())

	interp, err := h.provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	var res Response
	switch ev.Kind {
	case event.KindStructured:
		if upstream, ok := ev.Fields["err"]; ok {
			logger.Warn("event carries an upstream error")
			return nil, fnerrors.NewInvalidEventError(fmt.Sprint(upstream))
		}
		res = Response(maps.Clone(ev.Fields))
		if res == nil {
			res = Response{}
		}
	case event.KindRaw:
		if !utf8.Valid(ev.Bytes) {
			return nil, fnerrors.NewDecodeError(invalidOffset(ev.Bytes))
		}
		res = Response{KeyBytes: string(ev.Bytes)}
	default:
		logger.Warn("unrecognized event shape, continuing with an empty result")
		res = Response{}
	}

	for _, key := range event.ContextKeys {
		if v, ok := c.Get(key); ok {
			res[key] = v
		}
	}

	say, err := interp.Parse(ctx, Greeting)
	if err != nil {
		logger.WithError(err).Error("failed to parse greeting")
		return nil, fnerrors.NewExternalModelError("parse", err)
	}
	res[KeySay] = say

	logger.WithField("keys", len(res)).Debug("event handled")
	return res, nil
}

// Invoke implements the aws-lambda-go lambda.Handler interface.
func (h *Handler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	res, err := h.Handle(ctx, event.Decode(payload), event.FromLambda(ctx))
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
