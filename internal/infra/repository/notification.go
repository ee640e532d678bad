package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	createNotificationJobSQL = `INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5)`

	// SKIP LOCKED lets several dispatchers drain the queue without blocking
	// on each other.
	claimDueJobsSQL = `SELECT id, kind, topic, payload, attempts, run_at
		FROM notification_jobs
		WHERE status = $1 AND run_at <= $2
		ORDER BY run_at, id
		LIMIT $3
		FOR UPDATE SKIP LOCKED`

	markJobSentSQL = `UPDATE notification_jobs
		SET status = $2, attempts = attempts + 1, last_error = NULL, updated_at = now()
		WHERE id = $1`

	markJobFailedSQL = `UPDATE notification_jobs
		SET status = $2, attempts = attempts + 1, last_error = $3, run_at = $4, updated_at = now()
		WHERE id = $1`
)

type NotificationRepository struct {
	logger *slog.Logger
}

func NewNotificationRepository(logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{logger: logger}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createNotificationJobSQL, kind, topic, payload, runAt, shared.JobStatusQueued)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := tx.Query(ctx, claimDueJobsSQL, shared.JobStatusQueued, now, limit)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to claim notification jobs", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.NotificationJob, error) {
		var job shared.NotificationJob
		var attempts int32
		err := row.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &attempts, &job.RunAt)
		job.Attempts = int(attempts)
		return job, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, markJobSentSQL, id, shared.JobStatusSent); err != nil {
		return infra.WrapPgErr(r.logger, "failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, retryAt time.Time, dead bool) error {
	status := shared.JobStatusQueued
	if dead {
		status = shared.JobStatusDead
	}
	_, err := tx.Exec(ctx, markJobFailedSQL, id, status, pgtype.Text{String: lastError, Valid: true}, retryAt)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to mark notification job failed", err)
	}
	return nil
}
