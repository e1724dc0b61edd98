package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

const movementColumns = `id, member_id, kind, amount, status, notes,
	rejection_reason, reviewed_by, reviewed_at, created_at`

// FundRepository implements usecase.FundRepository. Movements are append-only;
// the only mutation is the one-shot review decision.
type FundRepository struct {
	pool *pgxpool.Pool
}

// NewFundRepository creates a new FundRepository.
func NewFundRepository(pool *pgxpool.Pool) *FundRepository {
	return &FundRepository{pool: pool}
}

const insertMovementQuery = `
	INSERT INTO fund_movements (` + movementColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Create inserts a new movement.
func (r *FundRepository) Create(ctx context.Context, movement *domain.FundMovement) error {
	_, err := r.pool.Exec(ctx, insertMovementQuery, movementArgs(movement)...)
	return err
}

// CreateTx inserts a new movement within a transaction.
func (r *FundRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.FundMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertMovementQuery, movementArgs(movement)...)
	return err
}

// GetByID retrieves a movement by ID.
func (r *FundRepository) GetByID(ctx context.Context, id string) (*domain.FundMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM fund_movements WHERE id = $1`

	return scanMovement(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a movement by ID with a FOR UPDATE lock.
func (r *FundRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FundMovement, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + movementColumns + ` FROM fund_movements WHERE id = $1 FOR UPDATE`

	return scanMovement(pgxTx.QueryRow(ctx, query, id))
}

// ReviewIfPending applies a review decision only when the movement is still
// pending. The conditional WHERE makes the decision terminal: a second review
// matches no rows.
func (r *FundRepository) ReviewIfPending(ctx context.Context, tx usecase.Transaction, id string, status domain.MovementStatus, reviewedBy, rejectionReason string, reviewedAt time.Time) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE fund_movements
		SET status = $2, reviewed_by = $3, rejection_reason = $4, reviewed_at = $5
		WHERE id = $1 AND status = $6
	`

	result, err := pgxTx.Exec(ctx, query,
		id,
		status,
		reviewedBy,
		rejectionReason,
		timeToPgTimestamptz(reviewedAt),
		domain.MovementStatusPending,
	)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() == 1, nil
}

// ListByMember retrieves a member's movements, newest first.
func (r *FundRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.FundMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM fund_movements
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, memberID, limit, offset)
}

// List retrieves movements club-wide, newest first.
func (r *FundRepository) List(ctx context.Context, limit, offset int) ([]*domain.FundMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM fund_movements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryMany(ctx, query, limit, offset)
}

const approvedTotalsQuery = `
	SELECT COALESCE(SUM(amount) FILTER (WHERE kind = $2), 0),
	       COALESCE(SUM(amount) FILTER (WHERE kind = $3), 0)
	FROM fund_movements
	WHERE member_id = $1 AND status = $4
`

// ApprovedTotals returns gross approved deposits and withdrawals for a member.
func (r *FundRepository) ApprovedTotals(ctx context.Context, memberID string) (decimal.Decimal, decimal.Decimal, error) {
	return scanApprovedTotals(r.pool.QueryRow(ctx, approvedTotalsQuery,
		memberID, domain.MovementKindDeposit, domain.MovementKindWithdrawal, domain.MovementStatusApproved))
}

// ApprovedTotalsTx is ApprovedTotals inside a transaction, so a withdrawal's
// balance check sees the ledger as of the member row lock.
func (r *FundRepository) ApprovedTotalsTx(ctx context.Context, tx usecase.Transaction, memberID string) (decimal.Decimal, decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return scanApprovedTotals(pgxTx.QueryRow(ctx, approvedTotalsQuery,
		memberID, domain.MovementKindDeposit, domain.MovementKindWithdrawal, domain.MovementStatusApproved))
}

// Stats summarizes movements by review status across the club.
func (r *FundRepository) Stats(ctx context.Context) (*usecase.MovementStats, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM fund_movements
		GROUP BY status
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &usecase.MovementStats{
		PendingAmount:  decimal.Zero,
		ApprovedAmount: decimal.Zero,
		RejectedAmount: decimal.Zero,
	}

	for rows.Next() {
		var (
			status domain.MovementStatus
			count  int
			amount pgtype.Numeric
		)
		if err := rows.Scan(&status, &count, &amount); err != nil {
			return nil, err
		}

		switch status {
		case domain.MovementStatusPending:
			stats.PendingCount = count
			stats.PendingAmount = numericToDecimal(amount)
		case domain.MovementStatusApproved:
			stats.ApprovedCount = count
			stats.ApprovedAmount = numericToDecimal(amount)
		case domain.MovementStatusRejected:
			stats.RejectedCount = count
			stats.RejectedAmount = numericToDecimal(amount)
		}
	}

	return stats, rows.Err()
}

func (r *FundRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.FundMovement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.FundMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

func movementArgs(movement *domain.FundMovement) []any {
	return []any{
		movement.ID,
		movement.MemberID,
		movement.Kind,
		decimalToNumeric(movement.Amount),
		movement.Status,
		movement.Notes,
		movement.RejectionReason,
		movement.ReviewedBy,
		timePtrToPgTimestamptz(movement.ReviewedAt),
		timeToPgTimestamptz(movement.CreatedAt),
	}
}

func scanApprovedTotals(row pgx.Row) (decimal.Decimal, decimal.Decimal, error) {
	var deposits, withdrawals pgtype.Numeric
	if err := row.Scan(&deposits, &withdrawals); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(deposits), numericToDecimal(withdrawals), nil
}

func scanMovement(row pgx.Row) (*domain.FundMovement, error) {
	var (
		movement   domain.FundMovement
		amount     pgtype.Numeric
		reviewedAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.MemberID,
		&movement.Kind,
		&amount,
		&movement.Status,
		&movement.Notes,
		&movement.RejectionReason,
		&movement.ReviewedBy,
		&reviewedAt,
		&createdAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMovementNotFound
	}
	if err != nil {
		return nil, err
	}

	movement.Amount = numericToDecimal(amount)
	movement.ReviewedAt = pgTimestamptzToTimePtr(reviewedAt)
	movement.CreatedAt = createdAt.Time

	return &movement, nil
}
