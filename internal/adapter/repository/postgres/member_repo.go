package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

const memberColumns = `id, email, name, hashed_password, role, active, created_at, updated_at`

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.Email,
		member.Name,
		member.HashedPassword,
		member.Role,
		member.Active,
		member.CreatedAt,
		member.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrEmailTaken
	}

	return err
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	return scanMember(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a member by ID with a FOR UPDATE lock. Used to
// serialize balance-sensitive writes for one member against each other.
func (r *MemberRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Member, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 FOR UPDATE`

	return scanMember(pgxTx.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a member by email.
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`

	return scanMember(r.pool.QueryRow(ctx, query, email))
}

// Update updates a member.
func (r *MemberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET name = $2, hashed_password = $3, role = $4, active = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.Name,
		member.HashedPassword,
		member.Role,
		member.Active,
		member.UpdatedAt,
	)

	return err
}

// Delete removes a member. Vehicles, expenses, settlements, and fund
// movements cascade via foreign keys.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// List retrieves members with pagination.
func (r *MemberRepository) List(ctx context.Context, limit, offset int) ([]*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var member domain.Member
	err := row.Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&member.HashedPassword,
		&member.Role,
		&member.Active,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &member, nil
}
