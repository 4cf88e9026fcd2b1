package dto

import (
	"recurring-detector/internal/models"
)

const dateLayout = "2006-01-02"

type RecurringResponse struct {
	ID           string  `json:"id"`
	MerchantName string  `json:"merchant_name"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Frequency    string  `json:"frequency"`
	Status       string  `json:"status"`
	LastDate     string  `json:"last_date"`
	NextDate     string  `json:"next_date"`
	Confidence   float64 `json:"confidence"`
	IconURL      *string `json:"icon_url"`
	CategoryID   *string `json:"category_id"`
}

type DetectResponse struct {
	Recurring []RecurringResponse `json:"recurring"`
	Count     int                 `json:"count"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func NewRecurringResponse(rec *models.RecurringTransaction) RecurringResponse {
	resp := RecurringResponse{
		ID:           rec.ID.String(),
		MerchantName: rec.MerchantName,
		Description:  rec.Description,
		Amount:       rec.Amount.InexactFloat64(),
		Frequency:    string(rec.Frequency),
		Status:       string(rec.Status),
		LastDate:     rec.LastDate.Format(dateLayout),
		NextDate:     rec.NextDate.Format(dateLayout),
		Confidence:   rec.Confidence,
		IconURL:      rec.IconURL,
	}
	if rec.CategoryID != nil {
		id := rec.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func NewRecurringList(records []*models.RecurringTransaction) []RecurringResponse {
	list := make([]RecurringResponse, 0, len(records))
	for _, rec := range records {
		list = append(list, NewRecurringResponse(rec))
	}
	return list
}
