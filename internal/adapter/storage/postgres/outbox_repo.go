package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OutboxRepo implements ports.OutboxRepository.
type OutboxRepo struct {
	pool Pool
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// Add enqueues an outbox event inside the caller's transaction, eligible
// for dispatch immediately.
func (r *OutboxRepo) Add(ctx context.Context, tx pgx.Tx, aggregateID uuid.UUID, eventType domain.EventType, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	query := `INSERT INTO outbox_events (event_id, aggregate_id, event_type, payload, status, attempts, created_at, next_attempt_at)
		VALUES ($1, $2, $3, $4, $5, 0, now(), now())`

	_, err = tx.Exec(ctx, query, uuid.New(), aggregateID, eventType, body, domain.OutboxPending)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// FetchPendingRequested returns due payment.requested events, oldest first.
func (r *OutboxRepo) FetchPendingRequested(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	query := `SELECT event_id, aggregate_id, event_type, payload, status, attempts, created_at, next_attempt_at
		FROM outbox_events
		WHERE event_type = $1 AND status = $2 AND next_attempt_at <= now()
		ORDER BY created_at ASC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, domain.EventPaymentRequested, domain.OutboxPending, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending outbox events: %w", err)
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var ev domain.OutboxEvent
		var body []byte
		if err := rows.Scan(&ev.EventID, &ev.AggregateID, &ev.EventType, &body,
			&ev.Status, &ev.Attempts, &ev.CreatedAt, &ev.NextAttemptAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &ev.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal outbox payload: %w", err)
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}

// MarkSent terminally settles a dispatched event.
func (r *OutboxRepo) MarkSent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) error {
	query := `UPDATE outbox_events SET status = $1 WHERE event_id = $2`

	if _, err := tx.Exec(ctx, query, domain.OutboxSent, eventID); err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}

// MarkFailed terminally settles an exhausted or unprocessable event.
func (r *OutboxRepo) MarkFailed(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, attempts int) error {
	query := `UPDATE outbox_events SET status = $1, attempts = $2 WHERE event_id = $3`

	if _, err := tx.Exec(ctx, query, domain.OutboxFailed, attempts, eventID); err != nil {
		return fmt.Errorf("mark outbox event failed: %w", err)
	}
	return nil
}

// Reschedule keeps an event PENDING with a bumped attempt count and a
// future due time.
func (r *OutboxRepo) Reschedule(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, attempts int, nextAttemptAt time.Time) error {
	query := `UPDATE outbox_events SET attempts = $1, next_attempt_at = $2 WHERE event_id = $3`

	if _, err := tx.Exec(ctx, query, attempts, nextAttemptAt, eventID); err != nil {
		return fmt.Errorf("reschedule outbox event: %w", err)
	}
	return nil
}

// BacklogSize counts PENDING events across all types.
func (r *OutboxRepo) BacklogSize(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM outbox_events WHERE status = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, domain.OutboxPending).Scan(&count); err != nil {
		return 0, fmt.Errorf("count outbox backlog: %w", err)
	}
	return count, nil
}

// OldestPendingLag reports how old the oldest PENDING event is. Zero when
// the backlog is empty.
func (r *OutboxRepo) OldestPendingLag(ctx context.Context) (time.Duration, error) {
	query := `SELECT created_at FROM outbox_events WHERE status = $1 ORDER BY created_at ASC LIMIT 1`

	var oldest time.Time
	err := r.pool.QueryRow(ctx, query, domain.OutboxPending).Scan(&oldest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("oldest pending lag: %w", err)
	}
	return time.Since(oldest), nil
}
