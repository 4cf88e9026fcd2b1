package service

import (
	"testing"

	"recurring-detector/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSanitizeUTF8(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Netflix", sanitizeUTF8("Netflix"))
	require.Equal(t, "Café", sanitizeUTF8("Café"))
	require.Equal(t, "Caf Roma", sanitizeUTF8("Caf\xe9 Roma"))
	require.Equal(t, "", sanitizeUTF8("\xff\xfe"))
}

func TestSanitizeRecord(t *testing.T) {
	t.Parallel()

	rec := &models.RecurringTransaction{MerchantName: "Ca\xe9", Description: "Ca\xe9 monthly"}
	sanitizeRecord(rec)
	require.Equal(t, "Ca", rec.MerchantName)
	require.Equal(t, "Ca monthly", rec.Description)
}
