package postgres

import (
	"context"
	"testing"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepo_Add(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	paymentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(pgxmock.AnyArg(), paymentID, domain.EventPaymentRequested, pgxmock.AnyArg(), domain.OutboxPending).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	payload := domain.PaymentRequestedPayload(paymentID, "merch-001", "trace-001")
	err = repo.Add(context.Background(), dbTx, paymentID, domain.EventPaymentRequested, payload)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_FetchPendingRequested(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	eventID := uuid.New()
	paymentID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM outbox_events").
		WithArgs(domain.EventPaymentRequested, domain.OutboxPending, 20).
		WillReturnRows(pgxmock.NewRows(
			[]string{"event_id", "aggregate_id", "event_type", "payload", "status", "attempts", "created_at", "next_attempt_at"},
		).AddRow(
			eventID, paymentID, domain.EventPaymentRequested,
			[]byte(`{"payment_id":"`+paymentID.String()+`","merchant_id":"merch-001"}`),
			domain.OutboxPending, 0, now, now,
		))

	events, err := repo.FetchPendingRequested(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, eventID, events[0].EventID)
	assert.Equal(t, paymentID, events[0].AggregateID)
	assert.Equal(t, "merch-001", events[0].Payload["merchant_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_Reschedule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	eventID := uuid.New()
	next := time.Now().Add(time.Second)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE outbox_events SET attempts").
		WithArgs(2, next, eventID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Reschedule(context.Background(), dbTx, eventID, 2, next)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkSent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	eventID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE outbox_events SET status").
		WithArgs(domain.OutboxSent, eventID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkSent(context.Background(), dbTx, eventID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_OldestPendingLag_EmptyBacklog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)

	mock.ExpectQuery("SELECT created_at FROM outbox_events").
		WithArgs(domain.OutboxPending).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}))

	lag, err := repo.OldestPendingLag(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, lag)
	assert.NoError(t, mock.ExpectationsWereMet())
}
