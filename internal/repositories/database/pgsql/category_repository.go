package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, type, name, icon, color, position, is_archived,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Type,
		&m.Name,
		&m.Icon,
		&m.Color,
		&m.Position,
		&m.IsArchived,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND category_id = $2;`
	m, err := scanCategory(r.db(ctx).QueryRow(ctx, query, userID, categoryID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "category", "failed to find category")
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType, includeArchived bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if categoryType != nil {
		args = append(args, string(*categoryType))
		query += " AND type = $" + strconv.Itoa(len(args))
	}
	if !includeArchived {
		query += " AND NOT is_archived"
	}
	query += " ORDER BY type, position, name;"

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query categories")
	}
	defer rows.Close()

	var ms []models.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan category row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating category rows")
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

// SaveCategories inserts all categories in one batch.
func (r *PgxCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, c := range categories {
		m := mapping.ToModelCategory(c)
		batch.Queue(query,
			m.CategoryID, m.UserID, m.Type, m.Name, m.Icon, m.Color, m.Position, m.IsArchived,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for i := range categories {
		if _, err := br.Exec(); err != nil {
			return mapError(err, fmt.Sprintf("failed to insert category %d of %d", i+1, len(categories)))
		}
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3, position = $4, is_archived = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $8 AND category_id = $9;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.Name, m.Icon, m.Color, m.Position, m.IsArchived,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.UserID, m.CategoryID,
	)
	if err != nil {
		return mapError(err, "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return notFoundIfNoRows(pgx.ErrNoRows, "category", "")
	}
	return nil
}
