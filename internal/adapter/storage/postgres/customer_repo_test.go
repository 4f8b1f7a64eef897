package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	createdAt := time.Now().Add(-30 * 24 * time.Hour)

	mock.ExpectQuery("SELECT .+ FROM customers WHERE customer_id").
		WithArgs("cust-001").
		WillReturnRows(pgxmock.NewRows(
			[]string{"customer_id", "kyc_level", "status", "created_at"},
		).AddRow("cust-001", domain.KycFull, domain.CustomerActive, &createdAt))

	customer, err := repo.GetByID(context.Background(), "cust-001")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "cust-001", customer.CustomerID)
	assert.Equal(t, domain.KycFull, customer.KycLevel)
	assert.Equal(t, domain.CustomerActive, customer.Status)
	require.NotNil(t, customer.CreatedAt)
	assert.True(t, customer.CreatedAt.Equal(createdAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetByID_Unknown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM customers WHERE customer_id").
		WithArgs("cust-missing").
		WillReturnRows(pgxmock.NewRows([]string{"customer_id", "kyc_level", "status", "created_at"}))

	customer, err := repo.GetByID(context.Background(), "cust-missing")
	assert.NoError(t, err)
	assert.Nil(t, customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetByID_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM customers WHERE customer_id").
		WithArgs("cust-001").
		WillReturnError(errors.New("connection refused"))

	customer, err := repo.GetByID(context.Background(), "cust-001")
	assert.Error(t, err)
	assert.Nil(t, customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}
