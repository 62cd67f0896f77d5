package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SundayYogurt/pim_service/config"
	"github.com/SundayYogurt/pim_service/infra/queue"
	"github.com/SundayYogurt/pim_service/internal/api"
	"github.com/SundayYogurt/pim_service/internal/audit"
	"github.com/SundayYogurt/pim_service/internal/database"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/logger"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/pkg/cloudinary"
	"github.com/SundayYogurt/pim_service/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET is required")
	}

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// A nil *Producer inside the interface would not compare equal to nil.
	var producer interfaces.ProducerHandler
	kafkaProducer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword, log)
	if kafkaProducer != nil {
		producer = kafkaProducer
		defer func() { _ = kafkaProducer.Close() }()
	}

	recorder := audit.NewRecorder(repository.NewAuditRepository(db), producer, log, audit.Options{
		QueueSize: cfg.AuditQueueSize,
		Workers:   cfg.AuditWorkers,
	})

	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatal("uploader", zap.Error(err))
	}

	app := api.NewApp(api.Deps{
		Config:   cfg,
		DB:       db,
		Recorder: recorder,
		Uploader: uploader,
		Log:      log,
	})

	go func() {
		log.Info("server starting", zap.String("addr", cfg.ServerPort))
		if err := app.Listen(cfg.ServerPort); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := recorder.Close(ctx); err != nil {
		log.Warn("audit queue not fully drained", zap.Error(err))
	}
	return nil
}

func newUploader(cfg config.Config) (interfaces.Uploader, error) {
	if cfg.CloudinaryUrl == "" {
		return storage.NewLocalUploader(cfg.UploadDir, "/uploads"), nil
	}
	cld, err := cloudinary.New(cfg.CloudinaryUrl)
	if err != nil {
		return nil, err
	}
	return cloudinary.NewCloudinaryUploader(cld, "pim"), nil
}
