package mailer

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
)

// Module exposes SMTP mailer to fx graph.
var Module = fx.Provide(newMailer)

func newMailer(cfg *config.Config) *SMTPMailer {
	return NewSMTPMailer(Options{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	})
}
