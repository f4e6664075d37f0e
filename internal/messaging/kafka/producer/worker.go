package producer

import (
	"context"
	"time"

	"github.com/jagatraya2508/absensi/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
	// maxDrainBatches bounds how many full batches one tick may relay.
	maxDrainBatches = 20
)

// ProcessOutboxEvents relays outbox rows every pollInterval until ctx is
// done. The first pass runs immediately. A tick keeps draining while batches
// come back full, so a backlog clears without waiting for further ticks.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		drain(ctx, repo, writer, log)

		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func drain(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger) {
	for i := 0; i < maxDrainBatches && ctx.Err() == nil; i++ {
		fetched, err := processBatch(ctx, repo, writer, log)
		if err != nil {
			log.Error("process outbox events failed", zap.Error(err))
			return
		}
		if fetched < batchSize {
			return
		}
	}
}

// ProcessPending publishes one batch of pending outbox rows and returns how
// many were marked sent. A failed publish is marked for retry and the batch
// continues.
func ProcessPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	return publishAll(ctx, repo, writer, logger, events), nil
}

func processBatch(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	publishAll(ctx, repo, writer, log, events)
	return len(events), nil
}

func publishAll(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger, events []kafka.OutboxEvent) int {
	if len(events) == 0 {
		return 0
	}
	log.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.Int("retry_count", event.RetryCount),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			log.Error("publish outbox event failed", append(fields, zap.Error(err))...)
			if event.RetryCount+1 >= kafka.MaxOutboxRetries {
				log.Warn("outbox event dead-lettered", fields...)
			}
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox retry failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		log.Info("outbox event sent", fields...)
	}
	return sent
}
