package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"recurring-detector/internal/detector"
	"recurring-detector/internal/models"
	"recurring-detector/internal/repository"
	"recurring-detector/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrFetchFailed means a collaborator read failed; nothing was written.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrWriteFailed means detection finished but the upsert failed.
	ErrWriteFailed    = errors.New("write failed")
	ErrRecordNotFound = errors.New("recurring transaction not found")
	ErrInvalidStatus  = errors.New("invalid recurring status")
)

type TransactionRepository interface {
	ListPosted(ctx context.Context, accountIDs []uuid.UUID, since time.Time) ([]*models.Transaction, error)
}

type AccountRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Account, error)
}

type CategoryRepository interface {
	IDsForLabels(ctx context.Context, labels []string) ([]uuid.UUID, error)
	LabelsByID(ctx context.Context) (map[uuid.UUID]string, error)
}

type RecurringRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error)
	UpsertBatch(ctx context.Context, records []*models.RecurringTransaction) error
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status models.RecurringStatus) error
}

type RecurringService struct {
	txRepo        TransactionRepository
	accountRepo   AccountRepository
	categoryRepo  CategoryRepository
	recurringRepo RecurringRepository
	config        *config.DetectorConfig
	logger        *zap.Logger
	now           func() time.Time
	newID         func() uuid.UUID
}

func NewRecurringService(
	txRepo TransactionRepository,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	recurringRepo RecurringRepository,
	cfg *config.DetectorConfig,
	logger *zap.Logger,
) *RecurringService {
	return &RecurringService{
		txRepo:        txRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		recurringRepo: recurringRepo,
		config:        cfg,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.New,
	}
}

// Detect runs a full detection pass for the user and persists the result.
// On ErrFetchFailed nothing is returned or written. On ErrWriteFailed the computed
// records are still returned.
func (s *RecurringService) Detect(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error) {
	started := time.Now()
	logger := s.logger.With(zap.String("user_id", userID.String()))

	var (
		accounts []*models.Account
		excluded []uuid.UUID
		labels   map[uuid.UUID]string
		existing []*models.RecurringTransaction
	)

	// Independent reads; the first failure cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if accounts, err = s.accountRepo.ListByUser(gctx, userID); err != nil {
			return fmt.Errorf("%w: accounts: %w", ErrFetchFailed, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if excluded, err = s.categoryRepo.IDsForLabels(gctx, detector.ExcludedCategoryLabels); err != nil {
			return fmt.Errorf("%w: excluded categories: %w", ErrFetchFailed, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if labels, err = s.categoryRepo.LabelsByID(gctx); err != nil {
			return fmt.Errorf("%w: category labels: %w", ErrFetchFailed, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if existing, err = s.recurringRepo.ListByUser(gctx, userID); err != nil {
			return fmt.Errorf("%w: existing recurring: %w", ErrFetchFailed, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Recurring detection aborted", zap.Error(err))
		return nil, err
	}

	accountIDs := make([]uuid.UUID, 0, len(accounts))
	for _, acc := range accounts {
		accountIDs = append(accountIDs, acc.ID)
	}
	if len(accountIDs) == 0 {
		logger.Info("No accounts, skipping recurring detection")
		return []*models.RecurringTransaction{}, nil
	}

	now := s.now()
	since := startOfDay(now).AddDate(0, 0, -s.config.LookbackDays)
	txs, err := s.txRepo.ListPosted(ctx, accountIDs, since)
	if err != nil {
		err = fmt.Errorf("%w: transactions: %w", ErrFetchFailed, err)
		logger.Error("Recurring detection aborted", zap.Error(err))
		return nil, err
	}

	candidates := detector.New(labels, s.now, logger).Detect(detector.Input{
		UserID:              userID,
		Transactions:        txs,
		AccountIDs:          accountIDs,
		ExcludedCategoryIDs: excluded,
	})
	for _, c := range candidates {
		sanitizeRecord(c)
	}

	records := detector.MatchExisting(candidates, existing, s.newID)
	var reused int
	for _, rec := range records {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		} else {
			reused++
		}
		rec.UpdatedAt = now
	}

	if err := s.recurringRepo.UpsertBatch(ctx, records); err != nil {
		err = fmt.Errorf("%w: %w", ErrWriteFailed, err)
		logger.Error("Failed to save recurring transactions", zap.Error(err), zap.Int("count", len(records)))
		return records, err
	}

	logger.Info("Recurring detection completed",
		zap.Int("transactions", len(txs)),
		zap.Int("detected", len(records)),
		zap.Int("reused_ids", reused),
		zap.Duration("took", time.Since(started)),
	)

	return records, nil
}

// startOfDay truncates to the calendar day so the window covers the whole first day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// List returns the user's stored recurring transactions ordered by next due date.
func (s *RecurringService) List(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error) {
	records, err := s.recurringRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].NextDate.Before(records[j].NextDate)
	})
	return records, nil
}

// UpdateStatus sets a user override such as "ignored"; detection preserves it on re-runs.
func (s *RecurringService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status models.RecurringStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.recurringRepo.UpdateStatus(ctx, userID, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to update recurring status: %w", err)
	}

	s.logger.Info("Recurring status updated",
		zap.String("user_id", userID.String()),
		zap.String("id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}
