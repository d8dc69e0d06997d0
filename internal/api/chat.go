package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/chat"
)

// eventStream writes SSE frames, deferring the response headers until the
// first frame so that failures before any output can still be reported
// with a JSON error status.
type eventStream struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func newEventStream(w http.ResponseWriter) *eventStream {
	return &eventStream{w: w, rc: http.NewResponseController(w)}
}

func (e *eventStream) start() {
	if e.started {
		return
	}
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(http.StatusOK)
	e.started = true
}

func (e *eventStream) delta(text string) error {
	e.start()
	if err := chat.WriteDelta(e.w, text); err != nil {
		return err
	}
	return e.flush()
}

func (e *eventStream) done() error {
	e.start()
	if err := chat.WriteDone(e.w); err != nil {
		return err
	}
	return e.flush()
}

func (e *eventStream) flush() error {
	if err := e.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.opts.Relay == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req chat.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stream := newEventStream(w)
	id, err := s.opts.Relay.Stream(r.Context(), req, stream.delta)
	if err != nil {
		if stream.started {
			// Headers are gone; the client sees a truncated stream.
			level := zap.WarnLevel
			if errors.Is(err, context.Canceled) {
				level = zap.DebugLevel
			}
			zap.L().Check(level, "api: chat stream aborted").Write(
				zap.String("relay_id", id),
				zap.Error(err),
			)
			return
		}
		status, msg := chat.HTTPStatus(err)
		writeError(w, status, msg)
		return
	}

	if err := stream.done(); err != nil {
		zap.L().Debug("api: write stream terminator", zap.String("relay_id", id), zap.Error(err))
	}
}
