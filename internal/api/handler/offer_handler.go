package handler

import (
	"encoding/json"
	"errors"
	"io"
	"loan-offer-service/internal/api/handler/dto"
	"loan-offer-service/internal/domain/offer"
	"loan-offer-service/internal/infrastructure/monitoring"
	"loan-offer-service/internal/pkg/apperrors"
	"log/slog"
	"net/http"
)

const maxRequestBodyBytes = 1 << 20

type OfferHandler struct {
	service   offer.OfferService
	validator *offer.RequestValidator
	logger    *slog.Logger
}

func NewOfferHandler(s offer.OfferService, v *offer.RequestValidator, l *slog.Logger) *OfferHandler {
	return &OfferHandler{
		service:   s,
		validator: v,
		logger:    l.With("component", "OfferHandler"),
	}
}

func decodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return nil, apperrors.MalformedRequest("Invalid JSON: unexpected end of JSON input", io.ErrUnexpectedEOF)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, apperrors.MalformedRequest("Request body is too large", err)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil, apperrors.MalformedRequest("Invalid JSON: unexpected end of JSON input", io.ErrUnexpectedEOF)
		default:
			return nil, apperrors.MalformedRequest("Invalid JSON: "+err.Error(), err)
		}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, apperrors.MalformedRequest("Invalid JSON: unexpected data after top-level value", errors.New("trailing data"))
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apperrors.MalformedRequest("Request body must be a JSON object", apperrors.ErrInvalidArgument)
	}
	return obj, nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"errors":[{"field":"","message":"An unexpected error occurred."}]}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	var fieldErrors apperrors.ValidationErrors
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &fieldErrors):
		respondJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(fieldErrors))
	case errors.Is(err, apperrors.ErrMalformedRequest) && errors.As(err, &appErr):
		respondJSON(w, http.StatusBadRequest, dto.NewErrorResponse("request", appErr.Message))
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, dto.NewErrorResponse("", "An unexpected error occurred."))
	}
}

// SearchOffers returns the bank offers matching the requested amount and duration.
//
// @Summary Search loan offers
// @Description Validates the applicant's request, reloads every bank source and returns the offers matching the exact amount and duration, cheapest rate first.
// @Tags Offers
// @Accept json
// @Produce json
// @Param request body dto.SearchOffersRequest true "Loan offer search request"
// @Success 200 {array} dto.OfferResponse "Matching offers sorted by ascending rate"
// @Success 204 "No offer matches the requested amount and duration"
// @Failure 400 {object} dto.ErrorResponse "Malformed JSON or invalid fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/offers [post]
func (h *OfferHandler) SearchOffers(w http.ResponseWriter, r *http.Request) {
	input, err := decodeJSONObject(w, r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Rejected malformed offer request", "error", err)
		monitoring.RecordSearch(monitoring.OutcomeInvalid)
		respondError(w, err)
		return
	}

	req, err := h.validator.Validate(input)
	if err != nil {
		h.logger.InfoContext(r.Context(), "Rejected invalid offer request", "error", err)
		monitoring.RecordSearch(monitoring.OutcomeInvalid)
		respondError(w, err)
		return
	}

	offers, err := h.service.SearchOffers(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	if len(offers) == 0 {
		h.logger.InfoContext(r.Context(), dto.NoOffersMessage, "amount", req.Amount, "duration", req.Duration)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewOfferResponses(offers))
}
