package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manacart/manacart/internal/storage/models"
)

// DiscountRepository handles discount codes.
type DiscountRepository interface {
	// Create inserts a new discount code.
	Create(ctx context.Context, code *models.DiscountCode) error

	// GetByCode retrieves a discount code, or nil when absent.
	GetByCode(ctx context.Context, code string) (*models.DiscountCode, error)

	// List retrieves all discount codes, newest first.
	List(ctx context.Context) ([]*models.DiscountCode, error)

	// Deactivate marks a code inactive.
	Deactivate(ctx context.Context, code string) error
}

type discountRepository struct {
	db *sql.DB
}

// NewDiscountRepository creates a new discount repository.
func NewDiscountRepository(db *sql.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, code *models.DiscountCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO discount_codes (code, percent, active, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, code.Code, code.Percent, code.Active, code.ExpiresAt, code.CreatedAt)
	if err != nil {
		return fmt.Errorf("create discount code: %w", err)
	}
	return nil
}

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	discount := &models.DiscountCode{}
	err := r.db.QueryRowContext(ctx, `
		SELECT code, percent, active, expires_at, created_at
		FROM discount_codes WHERE code = ?
	`, code).Scan(
		&discount.Code, &discount.Percent, &discount.Active,
		&discount.ExpiresAt, &discount.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get discount code: %w", err)
	}
	return discount, nil
}

func (r *discountRepository) List(ctx context.Context) ([]*models.DiscountCode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, percent, active, expires_at, created_at
		FROM discount_codes
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list discount codes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var codes []*models.DiscountCode
	for rows.Next() {
		discount := &models.DiscountCode{}
		if err := rows.Scan(
			&discount.Code, &discount.Percent, &discount.Active,
			&discount.ExpiresAt, &discount.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan discount row: %w", err)
		}
		codes = append(codes, discount)
	}
	return codes, rows.Err()
}

func (r *discountRepository) Deactivate(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE discount_codes SET active = 0 WHERE code = ?
	`, code)
	if err != nil {
		return fmt.Errorf("deactivate discount code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate discount code: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("discount code not found: %s", code)
	}
	return nil
}
