package main

import (
	"fmt"
	"os"

	"github.com/nqvinh-dev/minishop/config"
	"github.com/nqvinh-dev/minishop/infra/queue"
	"github.com/nqvinh-dev/minishop/internal/mailer"
	"github.com/nqvinh-dev/minishop/pkg/logger"
)

func main() {
	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg := config.LoadConfig()
	sugar.Infow("mail worker starting",
		"broker", cfg.KafkaBroker,
		"topic", cfg.KafkaTopic,
		"group", cfg.KafkaGroupID,
	)

	mailService := mailer.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.MailSubject,
		sugar,
	)
	handler := mailer.NewEventHandler(mailService, sugar)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	sugar.Info("mail worker listening for events")
	consumer.Listen()
}
