package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/couchcryptid/spaceweather-watch/internal/config"
)

// EmailChannel sends plain-text reports over authenticated SMTP submission.
// Both implicit TLS (port 465) and STARTTLS (port 587) are supported; the
// port defaults by TLS mode when not configured explicitly.
type EmailChannel struct {
	server string
	port   int
	ssl    bool
	user   string
	pass   string
	from   string
	to     string
}

// NewEmailChannel builds the email channel from a complete SMTP credential
// group. Callers must check cfg.EmailEnabled() first.
func NewEmailChannel(cfg *config.Config) *EmailChannel {
	ssl := cfg.SMTPTLS == config.SMTPTLSImplicit
	port := cfg.SMTPPort
	if port == 0 {
		if ssl {
			port = 465
		} else {
			port = 587
		}
	}
	return &EmailChannel{
		server: cfg.SMTPServer,
		port:   port,
		ssl:    ssl,
		user:   cfg.SMTPUser,
		pass:   cfg.SMTPPass,
		from:   cfg.EmailFrom,
		to:     cfg.EmailTo,
	}
}

func (e *EmailChannel) Name() string { return "email" }

// Send submits the message. A fresh SMTP client per send keeps the channel
// stateless; notification volume is bounded by the cooldown windows.
func (e *EmailChannel) Send(ctx context.Context, subject, body string) error {
	opts := []mail.Option{
		mail.WithPort(e.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.user),
		mail.WithPassword(e.pass),
	}
	if e.ssl {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(e.server, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(e.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(e.to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
