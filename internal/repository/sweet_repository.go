package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sweetshop/api/internal/models"
)

var ErrSweetNotFound = errors.New("sweet not found")

const sweetColumns = `id, name, description, category, price, quantity, image_url, created_at, updated_at`

type SweetRepository struct {
	pool *pgxpool.Pool
}

func NewSweetRepository(pool *pgxpool.Pool) *SweetRepository {
	return &SweetRepository{pool: pool}
}

func scanSweet(row pgx.Row) (models.Sweet, error) {
	var sweet models.Sweet
	err := row.Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Description,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.ImageURL,
		&sweet.CreatedAt,
		&sweet.UpdatedAt,
	)
	return sweet, err
}

func (r *SweetRepository) Create(ctx context.Context, sweet models.Sweet) (models.Sweet, error) {
	const query = `
		INSERT INTO sweets (id, name, description, category, price, quantity, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + sweetColumns

	row := r.pool.QueryRow(ctx, query,
		sweet.ID,
		sweet.Name,
		sweet.Description,
		sweet.Category,
		sweet.Price,
		sweet.Quantity,
		sweet.ImageURL,
	)
	return scanSweet(row)
}

func (r *SweetRepository) GetByID(ctx context.Context, id string) (models.Sweet, error) {
	const query = `SELECT ` + sweetColumns + ` FROM sweets WHERE id = $1`

	sweet, err := scanSweet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sweet{}, ErrSweetNotFound
		}
		return models.Sweet{}, err
	}
	return sweet, nil
}

func (r *SweetRepository) List(ctx context.Context) ([]models.Sweet, error) {
	const query = `SELECT ` + sweetColumns + ` FROM sweets ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSweets(rows)
}

// Search applies the set filters with AND. Name is a case-insensitive
// substring match, category exact, price bounds inclusive.
func (r *SweetRepository) Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSweets(rows)
}

// Update applies an allow-listed patch. Only the fields present in the
// patch are written; arbitrary keys never reach SQL.
func (r *SweetRepository) Update(ctx context.Context, id string, patch models.SweetPatch) (models.Sweet, error) {
	var (
		sets []string
		args []any
	)

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Category != nil {
		args = append(args, *patch.Category)
		sets = append(sets, fmt.Sprintf("category = $%d", len(args)))
	}
	if patch.Price != nil {
		args = append(args, *patch.Price)
		sets = append(sets, fmt.Sprintf("price = $%d", len(args)))
	}
	if patch.Quantity != nil {
		args = append(args, *patch.Quantity)
		sets = append(sets, fmt.Sprintf("quantity = $%d", len(args)))
	}
	if patch.ImageURL != nil {
		args = append(args, *patch.ImageURL)
		sets = append(sets, fmt.Sprintf("image_url = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE sweets SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), sweetColumns,
	)

	sweet, err := scanSweet(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sweet{}, ErrSweetNotFound
		}
		return models.Sweet{}, err
	}
	return sweet, nil
}

// Delete is idempotent: removing an absent id is not an error.
func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	return err
}

// AddStock increments the stock counter atomically and returns the
// updated row.
func (r *SweetRepository) AddStock(ctx context.Context, id string, quantity int) (models.Sweet, error) {
	const query = `
		UPDATE sweets SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.pool.QueryRow(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sweet{}, ErrSweetNotFound
		}
		return models.Sweet{}, err
	}
	return sweet, nil
}

func (r *SweetRepository) SetImageURL(ctx context.Context, id string, url string) (models.Sweet, error) {
	const query = `
		UPDATE sweets SET image_url = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.pool.QueryRow(ctx, query, id, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sweet{}, ErrSweetNotFound
		}
		return models.Sweet{}, err
	}
	return sweet, nil
}

// ListBelowQuantity returns sweets whose stock dropped under threshold,
// lowest first.
func (r *SweetRepository) ListBelowQuantity(ctx context.Context, threshold int) ([]models.Sweet, error) {
	const query = `SELECT ` + sweetColumns + ` FROM sweets WHERE quantity < $1 ORDER BY quantity ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSweets(rows)
}

func collectSweets(rows pgx.Rows) ([]models.Sweet, error) {
	var sweets []models.Sweet
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, err
		}
		sweets = append(sweets, sweet)
	}
	return sweets, rows.Err()
}
