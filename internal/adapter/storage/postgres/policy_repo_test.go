package postgres

import (
	"context"
	"testing"

	"payments-pipeline/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRepo_GetByRail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPolicyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM limits_policies WHERE rail").
		WithArgs(domain.MethodPIX).
		WillReturnRows(pgxmock.NewRows(
			[]string{"rail", "min_amount", "max_amount", "daily_limit_amount", "velocity_limit_count", "velocity_window_seconds"},
		).AddRow(domain.MethodPIX, "0.01", "5000.00", "20000.00", 10, 60))

	policy, err := repo.GetByRail(context.Background(), domain.MethodPIX)
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.Equal(t, domain.MethodPIX, policy.Rail)
	assert.True(t, policy.MaxAmount.Equal(decimal.RequireFromString("5000.00")))
	assert.Equal(t, 10, policy.VelocityLimitCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyRepo_GetByRail_NotConfigured(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPolicyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM limits_policies WHERE rail").
		WithArgs(domain.MethodTED).
		WillReturnRows(pgxmock.NewRows(
			[]string{"rail", "min_amount", "max_amount", "daily_limit_amount", "velocity_limit_count", "velocity_window_seconds"},
		))

	policy, err := repo.GetByRail(context.Background(), domain.MethodTED)
	assert.NoError(t, err)
	assert.Nil(t, policy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
