package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Handler processes queued notification tasks: email first, push as a
// secondary channel when a device token is present.
type Handler struct {
	Mailer *Mailer
	Pusher *Pusher
	Logger *zap.Logger
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}

// Register binds the handler's task types on an asynq mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskSend, h.process)
	mux.HandleFunc(TaskReminder, h.process)
}

func (h *Handler) process(ctx context.Context, task *asynq.Task) error {
	var p Payload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// Malformed payloads never succeed, drop instead of retrying.
		h.logger().Error("dropping malformed notification task", zap.Error(err))
		return nil
	}
	if p.Email == "" {
		h.logger().Warn("notification task without recipient", zap.String("kind", p.Kind))
		return nil
	}

	subject, body := Compose(p)
	if h.Mailer != nil && h.Mailer.Enabled() {
		if err := h.Mailer.Send(p.Email, subject, body); err != nil {
			h.logger().Error("email delivery failed",
				zap.String("kind", p.Kind), zap.String("email", p.Email), zap.Error(err))
			return fmt.Errorf("email delivery: %w", err)
		}
	} else {
		h.logger().Info("smtp not configured, skipping email",
			zap.String("kind", p.Kind), zap.String("email", p.Email))
	}

	// Push is best effort, a dead token must not fail the task.
	if h.Pusher.Enabled() && p.FCMToken != "" {
		if err := h.Pusher.Push(ctx, p); err != nil {
			h.logger().Warn("push delivery failed",
				zap.String("kind", p.Kind), zap.Error(err))
		}
	}
	return nil
}
