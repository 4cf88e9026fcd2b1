package detector

import (
	"time"

	"recurring-detector/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	testAccount = uuid.MustParse("7b0f8a43-58c1-4f1e-9a36-2f1c0d6f7a10")

	categoryFastFood    = uuid.MustParse("00000000-0000-0000-0000-00000000f00d")
	categoryConvenience = uuid.MustParse("00000000-0000-0000-0000-0000000c0c0c")
	categoryCoffee      = uuid.MustParse("00000000-0000-0000-0000-00000000caf3")
	categoryUtility     = uuid.MustParse("00000000-0000-0000-0000-0000000e1ec7")
	categoryCardPayment = uuid.MustParse("00000000-0000-0000-0000-0000000ccccc")
	categoryStreaming   = uuid.MustParse("00000000-0000-0000-0000-000000057ea0")

	testLabels = map[uuid.UUID]string{
		categoryFastFood:    models.LabelFastFood,
		categoryConvenience: models.LabelConvenienceStores,
		categoryCoffee:      models.LabelCoffee,
		categoryUtility:     models.LabelGasAndElectricity,
		categoryCardPayment: models.LabelCreditCardPayment,
		categoryStreaming:   "Streaming Services",
	}
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// charge builds a posted outflow of amount (given as a positive string) on testAccount.
func charge(merchant, amount string, date time.Time) *models.Transaction {
	name := merchant
	return &models.Transaction{
		ID:           uuid.New(),
		AccountID:    testAccount,
		Amount:       decimal.RequireFromString(amount).Neg(),
		Date:         date,
		MerchantName: &name,
		Description:  merchant + " purchase",
	}
}

func categorized(category uuid.UUID, txs ...*models.Transaction) []*models.Transaction {
	for _, tx := range txs {
		id := category
		tx.CategoryID = &id
	}
	return txs
}

func record(merchant, amount string, frequency models.Frequency, next time.Time, confidence float64) *models.RecurringTransaction {
	return &models.RecurringTransaction{
		MerchantName: merchant,
		Amount:       decimal.RequireFromString(amount),
		Frequency:    frequency,
		Status:       models.RecurringStatusActive,
		NextDate:     next,
		Confidence:   confidence,
	}
}
