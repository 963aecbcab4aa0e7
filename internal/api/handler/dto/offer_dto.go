package dto

import (
	"loan-offer-service/internal/domain/offer"
	"loan-offer-service/internal/pkg/apperrors"
)

const NoOffersMessage = "No loan offers available for this amount and duration."

// SearchOffersRequest documents the request body. Handlers decode into a
// generic object first so every field can be reported individually.
type SearchOffersRequest struct {
	Amount   int    `json:"amount" example:"50000"`
	Duration int    `json:"duration" example:"15"`
	Name     string `json:"name" example:"Jean Dupont"`
	Email    string `json:"email" example:"jonah@example.com"`
	Phone    string `json:"phone" example:"+261332123456"`
}

type OfferResponse struct {
	Bank     string  `json:"bank" example:"SG"`
	Amount   int     `json:"amount" example:"50000"`
	Duration int     `json:"duration" example:"15"`
	Rate     float64 `json:"rate" example:"2.9"`
}

func NewOfferResponse(o offer.LoanOffer) OfferResponse {
	return OfferResponse{
		Bank:     o.Bank,
		Amount:   o.Amount,
		Duration: o.Duration,
		Rate:     o.Rate,
	}
}

func NewOfferResponses(offers []offer.LoanOffer) []OfferResponse {
	resp := make([]OfferResponse, len(offers))
	for i, o := range offers {
		resp[i] = NewOfferResponse(o)
	}
	return resp
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

func NewErrorResponse(field, message string) ErrorResponse {
	return ErrorResponse{Errors: []ErrorDetail{{Field: field, Message: message}}}
}

func NewValidationErrorResponse(errs apperrors.ValidationErrors) ErrorResponse {
	details := make([]ErrorDetail, len(errs))
	for i, fe := range errs {
		details[i] = ErrorDetail{Field: fe.Field, Message: fe.Message}
	}
	return ErrorResponse{Errors: details}
}
