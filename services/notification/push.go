package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Pusher sends push notifications to a device token.
type Pusher struct {
	Client *messaging.Client
}

func (p *Pusher) Enabled() bool {
	return p != nil && p.Client != nil
}

// Push delivers one notification. The payload's kind maps to a short
// title/body pair, the email copy carries the detail.
func (p *Pusher) Push(ctx context.Context, payload Payload) error {
	if !p.Enabled() {
		return fmt.Errorf("push delivery is not configured")
	}
	if payload.FCMToken == "" {
		return fmt.Errorf("no device token")
	}

	title, body := pushText(payload)
	msg := &messaging.Message{
		Token: payload.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"kind": payload.Kind,
			"date": payload.Date,
			"time": payload.Time,
		},
	}
	_, err := p.Client.Send(ctx, msg)
	return err
}

func pushText(p Payload) (title, body string) {
	switch p.Kind {
	case KindConfirmed:
		return "Prenotazione confermata ✨", fmt.Sprintf("%s, %s alle %s", p.TreatmentName, p.Date, p.Time)
	case KindCancelled:
		return "Prenotazione annullata", fmt.Sprintf("%s del %s alle %s", p.TreatmentName, p.Date, p.Time)
	case KindRescheduled:
		return "Prenotazione spostata", fmt.Sprintf("Nuovo orario: %s alle %s", p.Date, p.Time)
	case KindReminder:
		return "Appuntamento domani", fmt.Sprintf("%s alle %s", p.TreatmentName, p.Time)
	default:
		return "Valentina Gargiulo Beauty", "Hai una nuova notifica"
	}
}
