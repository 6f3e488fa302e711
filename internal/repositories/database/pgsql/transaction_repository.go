package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, category_id, type, occurred_at, payment_method, note, client_ref,
	original_cents, original_currency, base_cents, base_currency, fx_rate, fx_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.CategoryID,
		&m.Type,
		&m.OccurredAt,
		&m.PaymentMethod,
		&m.Note,
		&m.ClientRef,
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

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID, m.UserID, m.CategoryID, m.Type, m.OccurredAt, m.PaymentMethod, m.Note, m.ClientRef,
		m.OriginalCents, m.OriginalCurrency, m.BaseCents, m.BaseCurrency, m.FxRate, m.FxDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "failed to save transaction")
}

// UpdateTransaction rewrites every mutable column, FX bundle included, in one statement.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET category_id = $1, type = $2, occurred_at = $3, payment_method = $4, note = $5, client_ref = $6,
			original_cents = $7, original_currency = $8, base_cents = $9, base_currency = $10,
			fx_rate = $11, fx_date = $12, last_updated_at = $13, last_updated_by = $14
		WHERE user_id = $15 AND transaction_id = $16;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.CategoryID, m.Type, m.OccurredAt, m.PaymentMethod, m.Note, m.ClientRef,
		m.OriginalCents, m.OriginalCurrency, m.BaseCents, m.BaseCurrency,
		m.FxRate, m.FxDate, m.LastUpdatedAt, m.LastUpdatedBy,
		m.UserID, m.TransactionID,
	)
	if err != nil {
		return mapError(err, "failed to update transaction")
	}
	if tag.RowsAffected() == 0 {
		return notFoundIfNoRows(pgx.ErrNoRows, "transaction", "")
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`, userID, transactionID)
	if err != nil {
		return mapError(err, "failed to delete transaction")
	}
	if tag.RowsAffected() == 0 {
		return notFoundIfNoRows(pgx.ErrNoRows, "transaction", "")
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	m, err := scanTransaction(r.db(ctx).QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		return nil, notFoundIfNoRows(err, "transaction", "failed to find transaction")
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionByClientRef(ctx context.Context, userID, clientRef string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND client_ref = $2;`
	m, err := scanTransaction(r.db(ctx).QueryRow(ctx, query, userID, clientRef))
	if err != nil {
		return nil, notFoundIfNoRows(err, "transaction", "failed to find transaction by clientRef")
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	q := newTransactionQuery(userID)
	q.where("occurred_at >= $?", from.UTC())
	q.where("occurred_at < $?", to.UTC())
	q.applyFilter(filter)
	return r.query(ctx, q.sql()+" ORDER BY occurred_at DESC, transaction_id DESC;", q.args)
}

// ListTransactions reads one keyset page ordered by (occurred_at, id) descending.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, from, to *time.Time, filter domain.TransactionFilter, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error) {
	q := newTransactionQuery(userID)
	if from != nil {
		q.where("occurred_at >= $?", from.UTC())
	}
	if to != nil {
		q.where("occurred_at < $?", to.UTC())
	}
	q.applyFilter(filter)
	q.after(cursor)
	return r.query(ctx, q.page(limit), q.args)
}

func (r *PgxTransactionRepository) query(ctx context.Context, query string, args []any) ([]domain.Transaction, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query transactions")
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan transaction row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating transaction rows")
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// transactionQuery accumulates WHERE conditions with numbered placeholders.
type transactionQuery struct {
	conds []string
	args  []any
}

func newTransactionQuery(userID string) *transactionQuery {
	return &transactionQuery{conds: []string{"user_id = $1"}, args: []any{userID}}
}

// where appends cond, replacing its "$?" with the next placeholder.
func (q *transactionQuery) where(cond string, arg any) {
	q.args = append(q.args, arg)
	q.conds = append(q.conds, strings.Replace(cond, "$?", "$"+strconv.Itoa(len(q.args)), 1))
}

func (q *transactionQuery) applyFilter(f domain.TransactionFilter) {
	if f.Type != nil {
		q.where("type = $?", string(*f.Type))
	}
	if f.CategoryID != nil {
		q.where("category_id = $?", *f.CategoryID)
	}
	if f.PaymentMethod != nil {
		q.where("payment_method = $?", string(*f.PaymentMethod))
	}
	if f.Query != nil {
		q.where(`note ILIKE $? ESCAPE '\'`, "%"+escapeLike(*f.Query)+"%")
	}
}

// after restricts the query to rows strictly older than cursor in
// (occurred_at, transaction_id) order. A nil cursor leaves it unchanged.
func (q *transactionQuery) after(cursor *pagination.Cursor) {
	if cursor == nil {
		return
	}
	q.args = append(q.args, cursor.OccurredAt.UTC(), cursor.ID)
	n := len(q.args)
	q.conds = append(q.conds, "(occurred_at, transaction_id) < ($"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+")")
}

// page renders the newest-first statement with limit bound as the last placeholder.
func (q *transactionQuery) page(limit int) string {
	q.args = append(q.args, limit)
	return q.sql() + " ORDER BY occurred_at DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(q.args)) + ";"
}

func (q *transactionQuery) sql() string {
	return "SELECT " + transactionColumns + " FROM transactions WHERE " + strings.Join(q.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
