package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/config"
	"github.com/deanb221/caravan/internal/usecase/shared"
)

const (
	ResultSent  = "sent"
	ResultRetry = "retry"
	ResultDead  = "dead"

	baseRetryDelay = 30 * time.Second
	maxRetryDelay  = time.Hour
)

type DeliveryRecorder interface {
	NotificationDelivered(result string)
}

type nopRecorder struct{}

func (nopRecorder) NotificationDelivered(string) {}

// Dispatcher drains the notification outbox. Jobs are claimed with SKIP
// LOCKED inside one transaction, so a crash before commit re-queues them and
// delivery is at-least-once.
type Dispatcher struct {
	uow       shared.UnitOfWork
	publisher Publisher
	renderer  *Renderer
	clock     clock.Clock
	recorder  DeliveryRecorder
	logger    *slog.Logger

	interval    time.Duration
	batchSize   int
	maxAttempts int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(
	uow shared.UnitOfWork,
	publisher Publisher,
	renderer *Renderer,
	clk clock.Clock,
	recorder DeliveryRecorder,
	cfg config.NotifyConfig,
	logger *slog.Logger,
) *Dispatcher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		uow:         uow,
		publisher:   publisher,
		renderer:    renderer,
		clock:       clk,
		recorder:    recorder,
		logger:      logger,
		interval:    cfg.PollInterval,
		batchSize:   max(cfg.BatchSize, 1),
		maxAttempts: max(cfg.MaxAttempts, 1),
	}
}

func (d *Dispatcher) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(ctx)
	}()
	d.logger.Info("notification dispatcher started", "interval", d.interval)
	return nil
}

func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return d.publisher.Close()
}

func (d *Dispatcher) run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	for {
		if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
			d.logger.Error("notification dispatch failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// RunOnce delivers one batch of due jobs and reports how many were sent.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	var sent int
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := d.clock.Now()
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, d.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			deliverErr := d.deliver(ctx, job)
			if deliverErr == nil {
				if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
					return err
				}
				d.recorder.NotificationDelivered(ResultSent)
				sent++
				continue
			}

			attempts := job.Attempts + 1
			dead := attempts >= d.maxAttempts
			retryAt := now.Add(RetryDelay(attempts))
			if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, deliverErr.Error(), retryAt, dead); err != nil {
				return err
			}
			if dead {
				d.recorder.NotificationDelivered(ResultDead)
				d.logger.Error("notification abandoned",
					"job_id", job.ID, "event", job.Topic, "attempts", attempts, "error", deliverErr)
			} else {
				d.recorder.NotificationDelivered(ResultRetry)
				d.logger.Warn("notification delivery failed",
					"job_id", job.ID, "event", job.Topic, "attempts", attempts, "retry_at", retryAt, "error", deliverErr)
			}
		}
		return nil
	})
	return sent, err
}

func (d *Dispatcher) deliver(ctx context.Context, job shared.NotificationJob) error {
	email, err := d.renderer.Render(job)
	if err != nil {
		return err
	}
	return d.publisher.Publish(ctx, job.ID.String(), email)
}

// RetryDelay doubles from 30s per attempt, capped at one hour.
func RetryDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delay := baseRetryDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}
