package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jagatraya2508/absensi/internal/config"
	"github.com/jagatraya2508/absensi/internal/events"
	"github.com/jagatraya2508/absensi/internal/face"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka/consumer"
	"github.com/jagatraya2508/absensi/internal/notify"
	"github.com/jagatraya2508/absensi/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer runs the admin notification consumers until SIGINT or SIGTERM.
func RunConsumer(cfg config.App) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return err
	}
	names := face.NewDirectory(face.NewRepository(gormDB))

	compliance := newReader(cfg, events.AttendanceRecordedTopic, "attendance-compliance")
	defer compliance.Close()
	leaves := newReader(cfg, events.LeaveLifecycleTopic, "leave-notifier")
	defer leaves.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.Run(ctx, compliance, "attendance_compliance", consumer.AttendanceCompliance(notifier, names, logger), logger)
	}()
	go func() {
		defer wg.Done()
		consumer.Run(ctx, leaves, "leave_notifier", consumer.LeaveRequested(notifier, names, logger), logger)
	}()
	wg.Wait()

	logger.Info("consumer shutting down")
	return nil
}

func newReader(cfg config.App, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          topic,
		GroupID:        cfg.Kafka.GroupID + "-" + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// buildNotifier falls back to logging when no bot token is configured.
func buildNotifier(cfg config.App, logger *zap.Logger) (notify.Notifier, error) {
	if cfg.Telegram.BotToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN not set, admin notifications go to the log")
		return notify.NewLogNotifier(logger), nil
	}
	n, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID, logger)
	if err != nil {
		return nil, fmt.Errorf("telegram notifier: %w", err)
	}
	return n, nil
}
