package repository

import (
	"context"
	"time"

	"recurring-detector/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "account_id", "amount", "date", "merchant_name", "description",
	"category_id", "icon_url", "pending", "created_at", "updated_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func listPostedQuery(accountIDs []uuid.UUID, since time.Time) squirrel.SelectBuilder {
	return squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"account_id": accountIDs}).
		Where(squirrel.Eq{"pending": false}).
		Where(squirrel.GtOrEq{"date": since}).
		OrderBy("date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// ListPosted returns non-pending transactions on the given accounts dated on or after since.
// Rows without a usable amount are skipped.
func (r *TransactionRepository) ListPosted(ctx context.Context, accountIDs []uuid.UUID, since time.Time) ([]*models.Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	sql, args, err := listPostedQuery(accountIDs, since).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var (
			tx     models.Transaction
			amount decimal.NullDecimal
		)
		if err := rows.Scan(
			&tx.ID, &tx.AccountID, &amount, &tx.Date, &tx.MerchantName, &tx.Description,
			&tx.CategoryID, &tx.IconURL, &tx.Pending, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if !amount.Valid {
			r.logger.Warn("Skipping transaction without amount", zap.String("transaction_id", tx.ID.String()))
			continue
		}
		tx.Amount = amount.Decimal
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
