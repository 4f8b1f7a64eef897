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

func TestIdempotencyRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)
	rec := &domain.IdempotencyRecord{
		MerchantID:      "merch-001",
		IdempotencyKey:  "idem-001",
		PaymentID:       uuid.New(),
		StatusCode:      202,
		ResponsePayload: []byte(`{"status":"RECEIVED"}`),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO idempotency_records").
		WithArgs(rec.MerchantID, rec.IdempotencyKey, rec.PaymentID, rec.StatusCode, rec.ResponsePayload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)
	paymentID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM idempotency_records").
		WithArgs("merch-001", "idem-001").
		WillReturnRows(pgxmock.NewRows(
			[]string{"merchant_id", "idempotency_key", "payment_id", "status_code", "response_payload", "created_at"},
		).AddRow("merch-001", "idem-001", paymentID, 202, []byte(`{"status":"RECEIVED"}`), now))

	rec, err := repo.Get(context.Background(), "merch-001", "idem-001")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, paymentID, rec.PaymentID)
	assert.Equal(t, 202, rec.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdempotencyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM idempotency_records").
		WithArgs("merch-001", "missing").
		WillReturnRows(pgxmock.NewRows(
			[]string{"merchant_id", "idempotency_key", "payment_id", "status_code", "response_payload", "created_at"},
		))

	rec, err := repo.Get(context.Background(), "merch-001", "missing")
	assert.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}
