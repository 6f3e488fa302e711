package pgsql

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, category_id, month,
	original_cents, original_currency, base_cents, base_currency, fx_rate, fx_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.CategoryID,
		&m.Month,
		&m.OriginalCents,
		&m.OriginalCurrency,
		&m.BaseCents,
		&m.BaseCurrency,
		&m.FxRate,
		&m.FxDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.BudgetLimit) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BudgetID, m.UserID, m.CategoryID, m.Month,
		m.OriginalCents, m.OriginalCurrency, m.BaseCents, m.BaseCurrency, m.FxRate, m.FxDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "failed to save budget")
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.BudgetLimit) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET original_cents = $1, original_currency = $2, base_cents = $3, base_currency = $4,
			fx_rate = $5, fx_date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $9 AND budget_id = $10;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.OriginalCents, m.OriginalCurrency, m.BaseCents, m.BaseCurrency,
		m.FxRate, m.FxDate, m.LastUpdatedAt, m.LastUpdatedBy,
		m.UserID, m.BudgetID,
	)
	if err != nil {
		return mapError(err, "failed to update budget")
	}
	if tag.RowsAffected() == 0 {
		return notFoundIfNoRows(pgx.ErrNoRows, "budget", "")
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND budget_id = $2;`, userID, budgetID)
	if err != nil {
		return mapError(err, "failed to delete budget")
	}
	if tag.RowsAffected() == 0 {
		return notFoundIfNoRows(pgx.ErrNoRows, "budget", "")
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.BudgetLimit, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND budget_id = $2;`
	m, err := scanBudget(r.db(ctx).QueryRow(ctx, query, userID, budgetID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "budget", "failed to find budget")
	}
	b := mapping.ToDomainBudget(m)
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgetsByMonth(ctx context.Context, userID, month string) ([]domain.BudgetLimit, error) {
	first, err := period.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2 ORDER BY created_at, budget_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID, first)
	if err != nil {
		return nil, mapError(err, "failed to query budgets")
	}
	defer rows.Close()

	ms := []models.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan budget row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating budget rows")
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}
