package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"glowbook/config"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// NewMailer builds a Mailer from the loaded configuration.
func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.Host != "" && m.From != ""
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", m.FromName, m.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg))
}

// Compose renders the subject and body for a payload. Messages are written
// in Italian, matching the studio's clientele.
func Compose(p Payload) (subject, body string) {
	name := p.Name
	if name == "" {
		name = "cliente"
	}
	treatment := p.TreatmentName
	if treatment == "" {
		treatment = "il tuo trattamento"
	}

	switch p.Kind {
	case KindRegistered:
		subject = "Benvenuta su Valentina Gargiulo Beauty"
		body = fmt.Sprintf(
			"Ciao %s,\n\nla tua registrazione è andata a buon fine! Ora puoi prenotare i tuoi trattamenti preferiti direttamente da casa.\n\nA presto,\nValentina Gargiulo Beauty",
			name)
	case KindConfirmed:
		subject = "La tua prenotazione è confermata ✨"
		body = fmt.Sprintf(
			"Ciao %s,\n\nla tua prenotazione per %s è stata confermata!\n\nData: %s\nOrario: %s\n\nTi aspetto!\nValentina Gargiulo Beauty",
			name, treatment, p.Date, p.Time)
	case KindCancelled:
		subject = "La tua prenotazione è stata annullata"
		body = fmt.Sprintf(
			"Ciao %s,\n\npurtroppo la tua prenotazione per %s del %s alle %s è stata annullata.\n\nPuoi effettuare una nuova prenotazione quando vuoi.\n\nValentina Gargiulo Beauty",
			name, treatment, p.Date, p.Time)
	case KindRescheduled:
		subject = "La tua prenotazione è stata spostata"
		body = fmt.Sprintf(
			"Ciao %s,\n\nla tua prenotazione per %s è stata spostata.\n\nNuova data: %s\nNuovo orario: %s\n\nValentina Gargiulo Beauty",
			name, treatment, p.Date, p.Time)
	case KindReminder:
		subject = "Promemoria: il tuo appuntamento è domani"
		body = fmt.Sprintf(
			"Ciao %s,\n\nti ricordo il tuo appuntamento per %s di domani %s alle %s.\n\nA domani!\nValentina Gargiulo Beauty",
			name, treatment, p.Date, p.Time)
	default:
		subject = "Valentina Gargiulo Beauty"
		body = fmt.Sprintf("Ciao %s,\n\nhai una nuova notifica dal tuo centro estetico.\n\nValentina Gargiulo Beauty", name)
	}
	return subject, body
}
