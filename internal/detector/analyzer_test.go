package detector

import (
	"testing"
	"time"

	"recurring-detector/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSetFrequencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		txs        []*models.Transaction
		now        time.Time
		frequency  models.Frequency
		confidence float64
		next       time.Time
	}{
		{
			name: "weekly",
			txs: []*models.Transaction{
				charge("Gym", "12.00", day(2024, time.March, 1)),
				charge("Gym", "12.00", day(2024, time.March, 8)),
				charge("Gym", "12.00", day(2024, time.March, 15)),
				charge("Gym", "12.00", day(2024, time.March, 22)),
			},
			now:        day(2024, time.March, 23),
			frequency:  models.FrequencyWeekly,
			confidence: 0.90,
			next:       day(2024, time.March, 29),
		},
		{
			name: "bi-weekly",
			txs: []*models.Transaction{
				charge("Cleaner", "80.00", day(2024, time.March, 1)),
				charge("Cleaner", "80.00", day(2024, time.March, 15)),
				charge("Cleaner", "80.00", day(2024, time.March, 29)),
			},
			now:        day(2024, time.March, 30),
			frequency:  models.FrequencyBiWeekly,
			confidence: 0.85,
			next:       day(2024, time.April, 12),
		},
		{
			name: "monthly",
			txs: []*models.Transaction{
				charge("Netflix", "15.99", day(2024, time.January, 15)),
				charge("Netflix", "15.99", day(2024, time.February, 15)),
				charge("Netflix", "15.99", day(2024, time.March, 15)),
				charge("Netflix", "15.99", day(2024, time.April, 15)),
			},
			now:        day(2024, time.April, 16),
			frequency:  models.FrequencyMonthly,
			confidence: 0.95,
			next:       day(2024, time.May, 15),
		},
		{
			name: "yearly",
			txs: []*models.Transaction{
				charge("Domain", "20.00", day(2022, time.January, 10)),
				charge("Domain", "20.00", day(2023, time.January, 10)),
				charge("Domain", "20.00", day(2024, time.January, 12)),
			},
			now:        day(2024, time.January, 13),
			frequency:  models.FrequencyYearly,
			confidence: 0.80,
			next:       day(2025, time.January, 12),
		},
		{
			name: "volatile amounts are penalized",
			txs: []*models.Transaction{
				charge("Contractor", "100.00", day(2024, time.January, 10)),
				charge("Contractor", "200.00", day(2024, time.February, 10)),
				charge("Contractor", "20.00", day(2024, time.March, 10)),
			},
			now:        day(2024, time.March, 11),
			frequency:  models.FrequencyMonthly,
			confidence: 0.85,
			next:       day(2024, time.April, 10),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := NewAnalyzer(testLabels, fixedNow(tt.now)).AnalyzeSet(tt.txs, tt.txs[0].MerchantKey())
			require.NotNil(t, rec)
			require.Equal(t, tt.frequency, rec.Frequency)
			require.InDelta(t, tt.confidence, rec.Confidence, 1e-9)
			require.True(t, tt.next.Equal(rec.NextDate), "next date %s, want %s", rec.NextDate, tt.next)
			require.Equal(t, models.RecurringStatusActive, rec.Status)
		})
	}
}

func TestAnalyzeSetUsesLatestTransaction(t *testing.T) {
	t.Parallel()

	latest := charge("Spotify", "15.00", day(2024, time.March, 10))
	latest.Description = "SPOTIFY P2F4A"
	txs := []*models.Transaction{
		latest,
		charge("Spotify", "10.00", day(2024, time.January, 10)),
		charge("Spotify", "12.00", day(2024, time.February, 10)),
	}

	rec := NewAnalyzer(testLabels, fixedNow(day(2024, time.March, 11))).AnalyzeSet(txs, "Spotify")
	require.NotNil(t, rec)
	require.True(t, decimal.RequireFromString("15.00").Equal(rec.Amount))
	require.Equal(t, "SPOTIFY P2F4A", rec.Description)
	require.True(t, day(2024, time.March, 10).Equal(rec.LastDate))
	require.Equal(t, "Spotify", rec.MerchantName)

	// Input order is left alone.
	require.Same(t, latest, txs[0])
}

func TestAnalyzeSetTwoPointRule(t *testing.T) {
	t.Parallel()

	now := fixedNow(day(2024, time.April, 6))

	t.Run("accepts a new monthly subscription", func(t *testing.T) {
		t.Parallel()
		rec := NewAnalyzer(nil, now).AnalyzeSet([]*models.Transaction{
			charge("Disney+", "9.99", day(2024, time.March, 5)),
			charge("Disney+", "9.99", day(2024, time.April, 5)),
		}, "Disney+")
		require.NotNil(t, rec)
		require.Equal(t, models.FrequencyMonthly, rec.Frequency)
		require.InDelta(t, 0.85, rec.Confidence, 1e-9)
		require.True(t, day(2024, time.May, 5).Equal(rec.NextDate))
	})

	rejects := []struct {
		name string
		txs  []*models.Transaction
	}{
		{
			name: "interval too short",
			txs: []*models.Transaction{
				charge("Disney+", "9.99", day(2024, time.March, 5)),
				charge("Disney+", "9.99", day(2024, time.April, 1)),
			},
		},
		{
			name: "amounts differ",
			txs: []*models.Transaction{
				charge("Disney+", "9.99", day(2024, time.March, 5)),
				charge("Disney+", "10.99", day(2024, time.April, 5)),
			},
		},
		{
			name: "day of month drifts",
			txs: []*models.Transaction{
				charge("Disney+", "9.99", day(2024, time.March, 3)),
				charge("Disney+", "9.99", day(2024, time.April, 1)),
			},
		},
	}
	for _, tt := range rejects {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Nil(t, NewAnalyzer(nil, now).AnalyzeSet(tt.txs, "Disney+"))
		})
	}
}

func TestAnalyzeSetCollapsesNoise(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(nil, fixedNow(day(2024, time.March, 16)))

	rec := a.AnalyzeSet([]*models.Transaction{
		charge("Hulu", "7.99", day(2024, time.January, 15)),
		charge("Hulu", "7.99", day(2024, time.January, 17)),
		charge("Hulu", "7.99", day(2024, time.February, 15)),
		charge("Hulu", "7.99", day(2024, time.March, 15)),
	}, "Hulu")
	require.NotNil(t, rec)
	require.Equal(t, models.FrequencyMonthly, rec.Frequency)
	require.InDelta(t, 0.95, rec.Confidence, 1e-9)

	// Three charges inside one noise window are a single event.
	require.Nil(t, a.AnalyzeSet([]*models.Transaction{
		charge("Hulu", "7.99", day(2024, time.January, 1)),
		charge("Hulu", "7.99", day(2024, time.January, 2)),
		charge("Hulu", "7.99", day(2024, time.January, 3)),
	}, "Hulu"))

	require.Nil(t, a.AnalyzeSet([]*models.Transaction{charge("Hulu", "7.99", day(2024, time.January, 1))}, "Hulu"))
	require.Nil(t, a.AnalyzeSet(nil, "Hulu"))
}

func TestAnalyzeSetStaleness(t *testing.T) {
	t.Parallel()

	txs := []*models.Transaction{
		charge("Magazine", "4.99", day(2023, time.November, 15)),
		charge("Magazine", "4.99", day(2023, time.December, 15)),
		charge("Magazine", "4.99", day(2024, time.January, 15)),
	}

	require.Nil(t, NewAnalyzer(nil, fixedNow(day(2024, time.April, 1))).AnalyzeSet(txs, "Magazine"))
	require.NotNil(t, NewAnalyzer(nil, fixedNow(day(2024, time.March, 1))).AnalyzeSet(txs, "Magazine"))
}

func TestAnalyzeSetHardExcludedCategory(t *testing.T) {
	t.Parallel()

	txs := categorized(categoryFastFood,
		charge("Taco Bell", "12.49", day(2024, time.January, 10)),
		charge("Taco Bell", "12.49", day(2024, time.February, 10)),
		charge("Taco Bell", "12.49", day(2024, time.March, 10)),
	)

	require.Nil(t, NewAnalyzer(testLabels, fixedNow(day(2024, time.March, 11))).AnalyzeSet(txs, "Taco Bell"))
}

func TestAnalyzeSetHabitSuppression(t *testing.T) {
	t.Parallel()

	now := fixedNow(day(2024, time.April, 12))
	driftingDays := func() []*models.Transaction {
		return []*models.Transaction{
			charge("Blue Bottle", "4.50", day(2024, time.January, 2)),
			charge("Blue Bottle", "4.50", day(2024, time.February, 8)),
			charge("Blue Bottle", "4.50", day(2024, time.March, 6)),
			charge("Blue Bottle", "4.50", day(2024, time.April, 11)),
		}
	}

	t.Run("day of month wanders", func(t *testing.T) {
		t.Parallel()
		txs := categorized(categoryCoffee, driftingDays()...)
		require.Nil(t, NewAnalyzer(testLabels, now).AnalyzeSet(txs, "Blue Bottle"))
	})

	t.Run("same history without a category is monthly", func(t *testing.T) {
		t.Parallel()
		rec := NewAnalyzer(testLabels, now).AnalyzeSet(driftingDays(), "Blue Bottle")
		require.NotNil(t, rec)
		require.Equal(t, models.FrequencyMonthly, rec.Frequency)
		require.InDelta(t, 0.95, rec.Confidence, 1e-9)
	})

	t.Run("amounts vary", func(t *testing.T) {
		t.Parallel()
		txs := categorized(categoryCoffee,
			charge("Blue Bottle", "4.50", day(2024, time.January, 15)),
			charge("Blue Bottle", "7.00", day(2024, time.February, 15)),
			charge("Blue Bottle", "3.25", day(2024, time.March, 15)),
		)
		require.Nil(t, NewAnalyzer(testLabels, fixedNow(day(2024, time.March, 16))).AnalyzeSet(txs, "Blue Bottle"))
	})

	t.Run("consistent coffee subscription passes", func(t *testing.T) {
		t.Parallel()
		txs := categorized(categoryCoffee,
			charge("Blue Bottle", "24.00", day(2024, time.January, 15)),
			charge("Blue Bottle", "24.00", day(2024, time.February, 15)),
			charge("Blue Bottle", "24.00", day(2024, time.March, 15)),
		)
		require.NotNil(t, NewAnalyzer(testLabels, fixedNow(day(2024, time.March, 16))).AnalyzeSet(txs, "Blue Bottle"))
	})
}

func TestAnalyzeSetUtilityFallback(t *testing.T) {
	t.Parallel()

	now := fixedNow(day(2024, time.August, 6))
	bills := func() []*models.Transaction {
		return []*models.Transaction{
			charge("PG&E", "80.00", day(2024, time.January, 5)),
			charge("PG&E", "95.00", day(2024, time.March, 1)),
			charge("PG&E", "110.00", day(2024, time.April, 2)),
			charge("PG&E", "70.00", day(2024, time.July, 8)),
			charge("PG&E", "85.00", day(2024, time.August, 5)),
		}
	}

	rec := NewAnalyzer(testLabels, now).AnalyzeSet(categorized(categoryUtility, bills()...), "PG&E")
	require.NotNil(t, rec)
	require.Equal(t, models.FrequencyMonthly, rec.Frequency)
	require.InDelta(t, 0.80, rec.Confidence, 1e-9)
	require.True(t, day(2024, time.September, 5).Equal(rec.NextDate))
	require.NotNil(t, rec.CategoryID)
	require.Equal(t, categoryUtility, *rec.CategoryID)

	require.Nil(t, NewAnalyzer(testLabels, now).AnalyzeSet(bills(), "PG&E"))
}

func TestClassifyIntervals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mean       float64
		stddev     float64
		class      categoryClass
		frequency  models.Frequency
		confidence float64
		ok         bool
	}{
		{"one skipped month", 60, 2, classDefault, models.FrequencyMonthly, 0.85, true},
		{"two skipped months", 90, 2, classDefault, models.FrequencyMonthly, 0.80, true},
		{"monthly stddev at limit", 30, 5, classDefault, "", 0, false},
		{"yearly ignores stddev", 370, 40, classDefault, models.FrequencyYearly, 0.80, true},
		{"utility fallback", 45, 20, classUtility, models.FrequencyMonthly, 0.80, true},
		{"utility fallback bounds", 120, 20, classUtility, "", 0, false},
		{"no pattern", 45, 20, classDefault, "", 0, false},
	}

	for _, tt := range tests {
		frequency, confidence, ok := classifyIntervals(tt.mean, tt.stddev, tt.class)
		require.Equal(t, tt.ok, ok, tt.name)
		require.Equal(t, tt.frequency, frequency, tt.name)
		require.InDelta(t, tt.confidence, confidence, 1e-9, tt.name)
	}
}
