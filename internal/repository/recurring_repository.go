package repository

import (
	"context"
	"strings"

	"recurring-detector/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var recurringColumns = []string{
	"id", "user_id", "merchant_name", "description", "amount", "frequency", "status",
	"last_date", "next_date", "confidence", "icon_url", "category_id", "created_at", "updated_at",
}

// Columns refreshed on every detection run. created_at is kept from the first insert.
var recurringUpsertColumns = []string{
	"merchant_name", "description", "amount", "frequency", "status",
	"last_date", "next_date", "confidence", "icon_url", "category_id", "updated_at",
}

type RecurringRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecurringRepository(db *pgxpool.Pool, logger *zap.Logger) *RecurringRepository {
	return &RecurringRepository{
		db:     db,
		logger: logger,
	}
}

func upsertConflictClause() string {
	sets := make([]string, len(recurringUpsertColumns))
	for i, col := range recurringUpsertColumns {
		sets[i] = col + " = EXCLUDED." + col
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func upsertBatchQuery(records []*models.RecurringTransaction) squirrel.InsertBuilder {
	builder := squirrel.Insert("recurring_transactions").
		Columns(recurringColumns...).
		Suffix(upsertConflictClause()).
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		builder = builder.Values(
			rec.ID, rec.UserID, rec.MerchantName, rec.Description, rec.Amount, rec.Frequency, rec.Status,
			rec.LastDate, rec.NextDate, rec.Confidence, rec.IconURL, rec.CategoryID, rec.CreatedAt, rec.UpdatedAt,
		)
	}
	return builder
}

// UpsertBatch writes all records in one statement.
func (r *RecurringRepository) UpsertBatch(ctx context.Context, records []*models.RecurringTransaction) error {
	if len(records) == 0 {
		return nil
	}

	sql, args, err := upsertBatchQuery(records).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByUser returns stored records oldest first, the order matching relies on.
func (r *RecurringRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error) {
	query := squirrel.Select(recurringColumns...).
		From("recurring_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.RecurringTransaction
	for rows.Next() {
		var rec models.RecurringTransaction
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.MerchantName, &rec.Description, &rec.Amount, &rec.Frequency, &rec.Status,
			&rec.LastDate, &rec.NextDate, &rec.Confidence, &rec.IconURL, &rec.CategoryID, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func updateStatusQuery(userID, id uuid.UUID, status models.RecurringStatus) squirrel.UpdateBuilder {
	return squirrel.Update("recurring_transactions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *RecurringRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status models.RecurringStatus) error {
	sql, args, err := updateStatusQuery(userID, id, status).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
