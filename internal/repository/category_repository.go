package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const labelsCacheKey = "category_labels"

// CategoryRepository reads the shared category table. Labels change rarely, so the
// id -> label map is cached for ttl.
type CategoryRepository struct {
	db     *pgxpool.Pool
	cache  *cache.Cache
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, ttl time.Duration, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func idsForLabelsQuery(labels []string) squirrel.SelectBuilder {
	return squirrel.Select("id").
		From("categories").
		Where(squirrel.Eq{"label": labels}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *CategoryRepository) IDsForLabels(ctx context.Context, labels []string) ([]uuid.UUID, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	sql, args, err := idsForLabelsQuery(labels).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// LabelsByID returns every category label keyed by id. Callers must not modify the map.
func (r *CategoryRepository) LabelsByID(ctx context.Context) (map[uuid.UUID]string, error) {
	if cached, ok := r.cache.Get(labelsCacheKey); ok {
		return cached.(map[uuid.UUID]string), nil
	}

	sql, args, err := squirrel.Select("id", "label").
		From("categories").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make(map[uuid.UUID]string)
	for rows.Next() {
		var (
			id    uuid.UUID
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, err
		}
		labels[id] = label
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.Set(labelsCacheKey, labels, cache.DefaultExpiration)
	r.logger.Debug("Category labels loaded", zap.Int("count", len(labels)))

	return labels, nil
}
