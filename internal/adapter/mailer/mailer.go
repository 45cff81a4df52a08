package mailer

import (
	"context"
	"errors"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// ErrDisabled is returned when SMTP is not configured.
var ErrDisabled = errors.New("mailer disabled")

// Message is a single HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Options configures SMTP delivery.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers messages through an SMTP relay.
type SMTPMailer struct {
	opts Options
}

// NewSMTPMailer constructs mailer. An empty host disables delivery.
func NewSMTPMailer(opts Options) *SMTPMailer {
	return &SMTPMailer{opts: opts}
}

// Enabled reports whether SMTP delivery is configured.
func (m *SMTPMailer) Enabled() bool {
	return m.opts.Host != "" && m.opts.From != ""
}

// Send delivers msg, dialing the relay for each call.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return ErrDisabled
	}

	built, err := m.build(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.opts.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, built); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("email has no recipients")
	}

	out := mail.NewMsg()
	if err := out.From(m.opts.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return out, nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if m.opts.Port > 0 {
		opts = append(opts, mail.WithPort(m.opts.Port))
	}
	if m.opts.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.opts.Username),
			mail.WithPassword(m.opts.Password),
		)
	}
	return opts
}
