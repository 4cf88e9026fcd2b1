package service

import (
	"strings"
	"unicode/utf8"

	"recurring-detector/internal/models"
)

// sanitizeUTF8 drops invalid UTF-8 bytes. Bank feeds occasionally carry raw
// Latin-1 merchant text that PostgreSQL rejects on insert.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

func sanitizeRecord(rec *models.RecurringTransaction) {
	rec.MerchantName = sanitizeUTF8(rec.MerchantName)
	rec.Description = sanitizeUTF8(rec.Description)
}
