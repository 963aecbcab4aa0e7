package offer

import "context"

// Repository loads every offer currently published by the configured banks.
// Implementations recover from per-source failures themselves and only
// return an error when the load as a whole was abandoned.
type Repository interface {
	LoadOffers(ctx context.Context) ([]LoanOffer, error)
}
