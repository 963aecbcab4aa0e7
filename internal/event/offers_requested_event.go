package event

import (
	"context"
	"time"
)

type Applicant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OfferPayload struct {
	Bank     string  `json:"bank"`
	Amount   int     `json:"amount"`
	Duration int     `json:"duration"`
	Rate     float64 `json:"rate"`
}

// LoanOffersRequestedEvent is emitted for every valid search so the sales
// side can follow up with the applicant.
type LoanOffersRequestedEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Applicant  Applicant     `json:"applicant"`
	Amount     int           `json:"amount"`
	Duration   int           `json:"duration"`
	OfferCount int           `json:"offerCount"`
	BestOffer  *OfferPayload `json:"bestOffer,omitempty"`
}

func (p *RabbitMQEventPublisher) PublishLoanOffersRequested(ctx context.Context, event LoanOffersRequestedEvent) error {
	return p.publish(ctx, routingKeyOffersRequested, event)
}
