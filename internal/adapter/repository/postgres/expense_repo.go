package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

const expenseColumns = `id, vehicle_id, description, amount, incurred_at, created_at, updated_at`

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.AdditionalExpense) error {
	query := `
		INSERT INTO additional_expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.VehicleID,
		expense.Description,
		decimalToNumeric(expense.Amount),
		timeToPgTimestamptz(expense.IncurredAt),
		timeToPgTimestamptz(expense.CreatedAt),
		timeToPgTimestamptz(expense.UpdatedAt),
	)

	return err
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.AdditionalExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM additional_expenses WHERE id = $1`

	return scanExpense(r.pool.QueryRow(ctx, query, id))
}

// Update updates an expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.AdditionalExpense) error {
	query := `
		UPDATE additional_expenses
		SET description = $2, amount = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.Description,
		decimalToNumeric(expense.Amount),
		timeToPgTimestamptz(expense.UpdatedAt),
	)

	return err
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM additional_expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// ListByVehicle retrieves a vehicle's expenses, oldest first.
func (r *ExpenseRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.AdditionalExpense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM additional_expenses
		WHERE vehicle_id = $1
		ORDER BY incurred_at ASC
	`

	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.AdditionalExpense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// TotalByVehicle sums a vehicle's expenses. Zero when there are none.
func (r *ExpenseRepository) TotalByVehicle(ctx context.Context, vehicleID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM additional_expenses WHERE vehicle_id = $1`

	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, vehicleID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// TotalByVehicleTx is TotalByVehicle inside a transaction, so the settlement
// snapshot sees the expense total as of its own lock.
func (r *ExpenseRepository) TotalByVehicleTx(ctx context.Context, tx usecase.Transaction, vehicleID string) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT COALESCE(SUM(amount), 0) FROM additional_expenses WHERE vehicle_id = $1`

	var total pgtype.Numeric
	if err := pgxTx.QueryRow(ctx, query, vehicleID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func scanExpense(row pgx.Row) (*domain.AdditionalExpense, error) {
	var (
		expense    domain.AdditionalExpense
		amount     pgtype.Numeric
		incurredAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.VehicleID,
		&expense.Description,
		&amount,
		&incurredAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.IncurredAt = incurredAt.Time
	expense.CreatedAt = createdAt.Time
	expense.UpdatedAt = updatedAt.Time

	return &expense, nil
}
