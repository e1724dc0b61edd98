package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

const settlementColumns = `id, vehicle_id, member_id, sold_price, sold_date,
	vin_snapshot, make_snapshot, model_snapshot, year_snapshot,
	purchase_price_snapshot, purchase_date_snapshot, expenses_snapshot,
	profit, fee_pct, fee_amount, net_profit, created_at`

// SettlementRepository implements usecase.SettlementRepository.
// Settlements are insert-only: the table has no update path.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// Create inserts a settlement within the settling transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.SaleSettlement) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO sale_settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := pgxTx.Exec(ctx, query,
		settlement.ID,
		settlement.VehicleID,
		settlement.MemberID,
		decimalToNumeric(settlement.SoldPrice),
		timeToPgTimestamptz(settlement.SoldDate),
		settlement.VINSnapshot,
		settlement.MakeSnapshot,
		settlement.ModelSnapshot,
		settlement.YearSnapshot,
		decimalToNumeric(settlement.PurchasePriceSnapshot),
		timeToPgTimestamptz(settlement.PurchaseDateSnapshot),
		decimalToNumeric(settlement.ExpensesSnapshot),
		decimalToNumeric(settlement.Profit),
		decimalToNumeric(settlement.FeePct),
		decimalToNumeric(settlement.FeeAmount),
		decimalToNumeric(settlement.NetProfit),
		timeToPgTimestamptz(settlement.CreatedAt),
	)

	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.SaleSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM sale_settlements WHERE id = $1`

	return scanSettlement(r.pool.QueryRow(ctx, query, id))
}

// GetByVehicle retrieves the settlement recorded for a vehicle.
func (r *SettlementRepository) GetByVehicle(ctx context.Context, vehicleID string) (*domain.SaleSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM sale_settlements WHERE vehicle_id = $1`

	return scanSettlement(r.pool.QueryRow(ctx, query, vehicleID))
}

// ListByMember retrieves a member's settlements, newest first.
func (r *SettlementRepository) ListByMember(ctx context.Context, memberID string, limit, offset int) ([]*domain.SaleSettlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM sale_settlements
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, memberID, limit, offset)
}

// List retrieves settlements club-wide, newest first.
func (r *SettlementRepository) List(ctx context.Context, limit, offset int) ([]*domain.SaleSettlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM sale_settlements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryMany(ctx, query, limit, offset)
}

// TotalsByMember aggregates a member's settlement figures.
func (r *SettlementRepository) TotalsByMember(ctx context.Context, memberID string) (*usecase.SettlementTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(sold_price), 0),
		       COALESCE(SUM(profit), 0),
		       COALESCE(SUM(fee_amount), 0),
		       COALESCE(SUM(net_profit), 0)
		FROM sale_settlements
		WHERE member_id = $1
	`

	var (
		totals  usecase.SettlementTotals
		revenue pgtype.Numeric
		profit  pgtype.Numeric
		fees    pgtype.Numeric
		net     pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, memberID).Scan(&totals.SoldCount, &revenue, &profit, &fees, &net)
	if err != nil {
		return nil, err
	}

	totals.TotalRevenue = numericToDecimal(revenue)
	totals.TotalProfit = numericToDecimal(profit)
	totals.TotalFees = numericToDecimal(fees)
	totals.TotalNet = numericToDecimal(net)

	return &totals, nil
}

func (r *SettlementRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.SaleSettlement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*domain.SaleSettlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

func scanSettlement(row pgx.Row) (*domain.SaleSettlement, error) {
	var (
		s             domain.SaleSettlement
		soldPrice     pgtype.Numeric
		soldDate      pgtype.Timestamptz
		purchasePrice pgtype.Numeric
		purchaseDate  pgtype.Timestamptz
		expenses      pgtype.Numeric
		profit        pgtype.Numeric
		feePct        pgtype.Numeric
		feeAmount     pgtype.Numeric
		netProfit     pgtype.Numeric
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&s.ID,
		&s.VehicleID,
		&s.MemberID,
		&soldPrice,
		&soldDate,
		&s.VINSnapshot,
		&s.MakeSnapshot,
		&s.ModelSnapshot,
		&s.YearSnapshot,
		&purchasePrice,
		&purchaseDate,
		&expenses,
		&profit,
		&feePct,
		&feeAmount,
		&netProfit,
		&createdAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettlementNotFound
	}
	if err != nil {
		return nil, err
	}

	s.SoldPrice = numericToDecimal(soldPrice)
	s.SoldDate = soldDate.Time
	s.PurchasePriceSnapshot = numericToDecimal(purchasePrice)
	s.PurchaseDateSnapshot = purchaseDate.Time
	s.ExpensesSnapshot = numericToDecimal(expenses)
	s.Profit = numericToDecimal(profit)
	s.FeePct = numericToDecimal(feePct)
	s.FeeAmount = numericToDecimal(feeAmount)
	s.NetProfit = numericToDecimal(netProfit)
	s.CreatedAt = createdAt.Time

	return &s, nil
}
