package services

import (
	"context"
	"fmt"

	"github.com/l3montree-dev/dashcase/config"
	"github.com/wneessen/go-mail"
)

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.Config) *smtpMailer {
	return &smtpMailer{cfg: cfg.SMTP}
}

func (m *smtpMailer) Configured() bool {
	return m.cfg.Configured()
}

// Send delivers one html mail to all recipients in a single attempt.
func (m *smtpMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("could not create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
