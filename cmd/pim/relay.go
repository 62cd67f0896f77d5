package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/pim_service/config"
	"github.com/SundayYogurt/pim_service/infra/queue"
	"github.com/SundayYogurt/pim_service/internal/logger"
	"github.com/SundayYogurt/pim_service/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Mail audit events from Kafka to the configured recipients",
	RunE:  runRelay,
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

func runRelay(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	if len(cfg.NotifyTo) == 0 {
		log.Warn("NOTIFY_TO is empty, events will be consumed without mailing")
	}

	mailer := notify.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName, log)
	handler := notify.NewHandler(mailer, cfg.NotifyTo, cfg.NotifyActions, log)
	consumer := queue.NewKafkaConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaUsername, cfg.KafkaPassword, handler, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("relay started", zap.String("topic", cfg.KafkaTopic), zap.String("group", cfg.KafkaGroupID))
	if err := consumer.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
