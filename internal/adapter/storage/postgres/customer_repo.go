package postgres

import (
	"context"
	"errors"
	"fmt"

	"payments-pipeline/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CustomerRepo implements ports.CustomerRepository over the externally
// seeded customers table.
type CustomerRepo struct {
	pool Pool
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(pool Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// GetByID fetches a customer. Returns nil, nil when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT customer_id, kyc_level, status, created_at FROM customers WHERE customer_id = $1`

	c := &domain.Customer{}
	err := r.pool.QueryRow(ctx, query, customerID).Scan(&c.CustomerID, &c.KycLevel, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}
