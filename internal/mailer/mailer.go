package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Mailer delivers candidate-facing mail.
type Mailer interface {
	SendInvitation(to, testName, accessCode string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger zerolog.Logger
}

// NewSMTPMailer returns an SMTP-backed mailer, or a logging no-op when host
// is empty so invitation flows still work without a relay configured.
func NewSMTPMailer(host string, port int, user, pass, from string) Mailer {
	if host == "" {
		log.Warn().Msg("smtp not configured, invitation mail disabled")
		return &disabledMailer{logger: log.With().Str("component", "mailer").Logger()}
	}
	return &SMTPMailer{
		host:   host,
		port:   port,
		user:   user,
		pass:   pass,
		from:   from,
		logger: log.With().Str("component", "mailer").Logger(),
	}
}

// SendInvitation mails a candidate their access code.
func (m *SMTPMailer) SendInvitation(to, testName, accessCode string) error {
	subject := fmt.Sprintf("You are invited to take the assessment %q", testName)
	body := fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"You have been invited to take the assessment %q.\r\n"+
			"Your access code is: %s\r\n\r\n"+
			"Log in with this code and the email address this message was sent to.\r\n",
		testName, accessCode)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.from, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send invitation: %w", err)
	}

	m.logger.Info().Str("to", to).Msg("invitation sent")
	return nil
}

type disabledMailer struct {
	logger zerolog.Logger
}

func (m *disabledMailer) SendInvitation(to, testName, accessCode string) error {
	m.logger.Info().Str("to", to).Str("test", testName).Msg("smtp disabled, invitation not sent")
	return nil
}
