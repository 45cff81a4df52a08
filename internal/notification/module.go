package notification

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/adapter/mailer"
	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/worker"
)

// Module registers email notifier as order event handler when SMTP is configured.
var Module = fx.Provide(
	fx.Annotate(newHandler, fx.ResultTags(worker.HandlerGroup)),
)

type handlerParams struct {
	fx.In

	Mailer *mailer.SMTPMailer
	Config *config.Config
	Logger *slog.Logger
}

func newHandler(p handlerParams) worker.Handler {
	if !p.Mailer.Enabled() {
		p.Logger.Warn("SMTP is not configured, order emails are disabled")
		return nil
	}
	return NewEmailNotifier(p.Mailer, p.Config.AdminEmails)
}
