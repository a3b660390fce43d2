// Package notification delivers booking lifecycle messages to clients over
// email and push. Delivery is asynchronous: callers enqueue and move on.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Asynq task types.
const (
	TaskSend     = "notification:send"
	TaskReminder = "notification:reminder"
)

// Message kinds.
const (
	KindRegistered  = "registered"
	KindConfirmed   = "confirmed"
	KindCancelled   = "cancelled"
	KindRescheduled = "rescheduled"
	KindReminder    = "reminder"
)

// Payload carries everything a delivery needs, so the worker never has to
// reach back into the database.
type Payload struct {
	Kind          string `json:"kind"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	FCMToken      string `json:"fcmToken,omitempty"`
	TreatmentName string `json:"treatmentName,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
}

// Dispatcher enqueues notifications. Implementations never block the caller
// on delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, p Payload) error
	// DispatchAt schedules delivery for a future instant, used for
	// appointment reminders.
	DispatchAt(ctx context.Context, p Payload, at time.Time) error
}

// AsynqDispatcher enqueues notification tasks on the shared asynq queue.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func (d *AsynqDispatcher) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.L()
}

func (d *AsynqDispatcher) Dispatch(_ context.Context, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskSend, data)
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		d.logger().Error("failed to enqueue notification",
			zap.String("kind", p.Kind), zap.Error(err))
		return err
	}
	return nil
}

func (d *AsynqDispatcher) DispatchAt(_ context.Context, p Payload, at time.Time) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskReminder, data)
	if _, err := d.Client.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(3)); err != nil {
		d.logger().Error("failed to schedule reminder",
			zap.String("email", p.Email), zap.Error(err))
		return err
	}
	return nil
}

// NopDispatcher discards everything. Used in tests and when the queue is
// not configured.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, Payload) error              { return nil }
func (NopDispatcher) DispatchAt(context.Context, Payload, time.Time) error { return nil }
