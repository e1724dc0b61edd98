package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

const vehicleColumns = `id, member_id, vin, make, model, year, purchase_price, purchase_date, status, created_at, updated_at`

// VehicleRepository implements usecase.VehicleRepository.
type VehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository creates a new VehicleRepository.
func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

// Create inserts a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		vehicle.ID,
		vehicle.MemberID,
		vehicle.VIN,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		decimalToNumeric(vehicle.PurchasePrice),
		timeToPgTimestamptz(vehicle.PurchaseDate),
		vehicle.Status,
		timeToPgTimestamptz(vehicle.CreatedAt),
		timeToPgTimestamptz(vehicle.UpdatedAt),
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	return scanVehicle(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a vehicle by ID with a FOR UPDATE lock.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Vehicle, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`

	return scanVehicle(pgxTx.QueryRow(ctx, query, id))
}

// GetByVIN retrieves a vehicle by VIN within one member's inventory.
func (r *VehicleRepository) GetByVIN(ctx context.Context, memberID, vin string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE member_id = $1 AND vin = $2`

	return scanVehicle(r.pool.QueryRow(ctx, query, memberID, vin))
}

// Update updates mutable vehicle attributes.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		vehicle.ID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		timeToPgTimestamptz(vehicle.UpdatedAt),
	)

	return err
}

// MarkSoldIfInStock flips the vehicle to SOLD only when it is still IN_STOCK.
// The WHERE clause makes the flip conditional, so of two racing settlements
// exactly one observes a row change.
func (r *VehicleRepository) MarkSoldIfInStock(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE vehicles
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := pgxTx.Exec(ctx, query,
		id,
		domain.VehicleStatusSold,
		timeToPgTimestamptz(updatedAt),
		domain.VehicleStatusInStock,
	)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() == 1, nil
}

// Delete removes a vehicle. Expenses cascade; settlements keep their snapshots.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// List retrieves vehicles matching the filter.
func (r *VehicleRepository) List(ctx context.Context, filter usecase.VehicleFilter) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []any{}

	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		query += fmt.Sprintf(` AND member_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

// TotalPurchaseCost sums purchase prices over every vehicle the member has
// ever owned, sold ones included.
func (r *VehicleRepository) TotalPurchaseCost(ctx context.Context, memberID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(purchase_price), 0) FROM vehicles WHERE member_id = $1`

	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, memberID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// TotalPurchaseCostTx is TotalPurchaseCost inside a transaction.
func (r *VehicleRepository) TotalPurchaseCostTx(ctx context.Context, tx usecase.Transaction, memberID string) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT COALESCE(SUM(purchase_price), 0) FROM vehicles WHERE member_id = $1`

	var total pgtype.Numeric
	if err := pgxTx.QueryRow(ctx, query, memberID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// CountByMember counts a member's vehicles, total and sold.
func (r *VehicleRepository) CountByMember(ctx context.Context, memberID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM vehicles
		WHERE member_id = $1
	`

	var total, sold int
	err := r.pool.QueryRow(ctx, query, memberID, domain.VehicleStatusSold).Scan(&total, &sold)

	return total, sold, err
}

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var (
		vehicle       domain.Vehicle
		purchasePrice pgtype.Numeric
		purchaseDate  pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&vehicle.ID,
		&vehicle.MemberID,
		&vehicle.VIN,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&purchasePrice,
		&purchaseDate,
		&vehicle.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	vehicle.PurchasePrice = numericToDecimal(purchasePrice)
	vehicle.PurchaseDate = purchaseDate.Time
	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return &vehicle, nil
}
