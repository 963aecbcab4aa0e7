package offer

import (
	"context"
	"fmt"
	"loan-offer-service/internal/event"
	"loan-offer-service/internal/infrastructure/monitoring"
	"log/slog"
	"time"
)

type OfferService interface {
	SearchOffers(ctx context.Context, req LoanRequest) ([]LoanOffer, error)
}

var _ OfferService = (*offerService)(nil)

type offerService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewOfferService(repo Repository, pub event.EventPublisher, logger *slog.Logger) OfferService {
	if repo == nil {
		panic("offer repository cannot be nil")
	}
	if pub == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &offerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "offerService")),
	}
}

// SearchOffers reloads every bank source, keeps the offers matching the
// request and returns them cheapest first. An empty result is not an error.
func (s *offerService) SearchOffers(ctx context.Context, req LoanRequest) ([]LoanOffer, error) {
	logCtx := s.logger.With(slog.Int("amount", req.Amount), slog.Int("duration", req.Duration))
	logCtx.DebugContext(ctx, "Loading offers from bank sources")

	offers, err := s.repo.LoadOffers(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to load offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	matched := FilterAndSort(offers, req.Amount, req.Duration)
	logCtx.InfoContext(ctx, "Offer search completed", slog.Int("loaded", len(offers)), slog.Int("matched", len(matched)))

	if len(matched) == 0 {
		monitoring.RecordSearch(monitoring.OutcomeEmpty)
	} else {
		monitoring.RecordSearch(monitoring.OutcomeMatched)
	}

	if err := s.pub.PublishLoanOffersRequested(ctx, newOffersRequestedEvent(req, matched)); err != nil {
		logCtx.WarnContext(ctx, "Failed to publish offers requested event", slog.Any("error", err))
	}

	return matched, nil
}

func newOffersRequestedEvent(req LoanRequest, matched []LoanOffer) event.LoanOffersRequestedEvent {
	evt := event.LoanOffersRequestedEvent{
		Timestamp: time.Now().UTC(),
		Applicant: event.Applicant{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Amount:     req.Amount,
		Duration:   req.Duration,
		OfferCount: len(matched),
	}
	if len(matched) > 0 {
		best := matched[0]
		evt.BestOffer = &event.OfferPayload{
			Bank:     best.Bank,
			Amount:   best.Amount,
			Duration: best.Duration,
			Rate:     best.Rate,
		}
	}
	return evt
}
