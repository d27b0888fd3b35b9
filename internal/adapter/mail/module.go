package mail

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module provides the mail port to fx graph.
var Module = fx.Provide(newMailer)

type mailerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
}

func newMailer(p mailerParams) usecase.Mailer {
	logger := p.Logger.Named("mail")
	if len(p.Config.KafkaBrokers) == 0 {
		logger.Warn("kafka brokers not configured, mails are only logged")
		return NewLogMailer(p.Config.MailDefaultSender, logger)
	}

	mailer := NewKafkaMailer(NewKafkaWriter(p.Config.KafkaBrokers, p.Config.MailTopic), p.Config.MailDefaultSender, logger)
	registerLifecycle(p.Lifecycle, mailer, logger)
	return mailer
}

func registerLifecycle(lc fx.Lifecycle, mailer *KafkaMailer, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := mailer.Close(); err != nil {
				logger.Error("close kafka writer", zap.Error(err))
				return err
			}
			return nil
		},
	})
}
