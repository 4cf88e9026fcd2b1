package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// Next advances date by one period of the frequency.
func (f Frequency) Next(date time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return date.AddDate(0, 0, 14)
	case FrequencyYearly:
		return date.AddDate(1, 0, 0)
	default:
		return date.AddDate(0, 1, 0)
	}
}

// CycleDays is the nominal cycle length used for overdue checks.
func (f Frequency) CycleDays() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiWeekly:
		return 14
	case FrequencyYearly:
		return 365
	default:
		return 30
	}
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

type RecurringStatus string

const (
	RecurringStatusActive  RecurringStatus = "active"
	RecurringStatusIgnored RecurringStatus = "ignored"
)

func (s RecurringStatus) Valid() bool {
	return s == RecurringStatusActive || s == RecurringStatusIgnored
}

// RecurringTransaction is a detected recurring charge. Freshly detected candidates
// carry a zero ID until they are matched against stored records.
type RecurringTransaction struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	MerchantName string          `db:"merchant_name"`
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	Frequency    Frequency       `db:"frequency"`
	Status       RecurringStatus `db:"status"`
	LastDate     time.Time       `db:"last_date"`
	NextDate     time.Time       `db:"next_date"`
	Confidence   float64         `db:"confidence"`
	IconURL      *string         `db:"icon_url"`
	CategoryID   *uuid.UUID      `db:"category_id"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
