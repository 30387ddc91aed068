package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/metrics"
	"fulfillment/internal/model"
	"fulfillment/internal/repository"

	"go.uber.org/zap"
)

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// ClaimLease bounds how long a claimed event may stay PROCESSING before
	// another poll takes it over.
	ClaimLease   time.Duration
}

// Broadcaster receives every delivered event keyed by return id, e.g. the
// admin WebSocket hub.
type Broadcaster interface {
	Publish(key string, message []byte)
}

// Publisher drains the outbox table into Kafka.
type Publisher struct {
	repo           repository.OutboxRepository
	producer       Producer
	broadcaster    Broadcaster
	config         PublisherConfig
	logger         *zap.Logger
	now            func() time.Time
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(repo repository.OutboxRepository, producer Producer, broadcaster Broadcaster, config PublisherConfig, logger *zap.Logger) *Publisher {
	return &Publisher{
		repo:           repo,
		producer:       producer,
		broadcaster:    broadcaster,
		config:         config,
		logger:         logger,
		now:            time.Now,
		shutdownSignal: make(chan struct{}),
	}
}

func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("outbox publisher started",
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Int("batch_size", p.config.BatchSize))
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error("outbox batch failed", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher received shutdown signal")
			return
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled")
			return
		}
	}
}

// Shutdown stops Run, waits for the in-flight batch, and closes the producer.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.shutdownSignal)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			p.logger.Info("outbox publisher stopped")
		case <-time.After(30 * time.Second):
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close producer", zap.Error(err))
		}
	})
}

// ProcessBatch claims and delivers one batch, returning how many were sent.
func (p *Publisher) ProcessBatch(ctx context.Context) (int, error) {
	events, err := p.repo.ClaimBatch(ctx, p.config.BatchSize, p.config.MaxAttempts, p.now().UTC(), p.config.ClaimLease)
	if err != nil {
		return 0, fmt.Errorf("failed to claim outbox events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	p.logger.Debug("outbox events claimed", zap.Int("count", len(events)))

	sent := 0
	for i := range events {
		select {
		case <-p.shutdownSignal:
			return sent, errors.New("publisher shutdown during batch processing")
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}

		if err := p.deliver(ctx, &events[i]); err != nil {
			p.logger.Warn("outbox event delivery failed",
				zap.String("event_id", events[i].ID.String()),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (p *Publisher) deliver(ctx context.Context, event *model.OutboxEvent) error {
	err := p.producer.SendMessage(ctx, event.Topic, []byte(event.EventKey), event.Payload)
	if err != nil {
		attempts := event.Attempts + 1
		if attempts >= p.config.MaxAttempts {
			p.logger.Error("outbox event reached max attempts",
				zap.String("event_id", event.ID.String()),
				zap.Int("attempts", attempts))
		}
		metrics.OutboxEventsTotal.WithLabelValues("failed").Inc()
		if updateErr := p.repo.MarkFailed(ctx, event.ID, attempts, err.Error()); updateErr != nil {
			return fmt.Errorf("failed to mark event failed after send error %v: %w", err, updateErr)
		}
		return err
	}

	if err := p.repo.MarkDone(ctx, event.ID, p.now().UTC()); err != nil {
		return fmt.Errorf("failed to mark event done: %w", err)
	}
	metrics.OutboxEventsTotal.WithLabelValues("sent").Inc()

	if p.broadcaster != nil {
		p.broadcaster.Publish(event.EventKey, event.Payload)
	}
	return nil
}
