package batch

import (
	"context"
	"fmt"
	"loan-offer-service/internal/domain/offer"
	"loan-offer-service/internal/infrastructure/monitoring"
	"log/slog"
	"sort"
	"time"
)

type BankOfferLoader interface {
	LoadOffersByBank(ctx context.Context) (map[string][]offer.LoanOffer, error)
}

// SourceAuditJob periodically loads every bank source and publishes how many
// usable offers each one holds. Its results never feed request handling.
type SourceAuditJob struct {
	loader BankOfferLoader
	logger *slog.Logger
}

func NewSourceAuditJob(loader BankOfferLoader, logger *slog.Logger) *SourceAuditJob {
	if loader == nil || logger == nil {
		panic("SourceAuditJob dependencies cannot be nil")
	}
	return &SourceAuditJob{
		loader: loader,
		logger: logger.With("job", "SourceAudit"),
	}
}

func (j *SourceAuditJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting offer source audit job.")

	byBank, err := j.loader.LoadOffersByBank(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load offer sources, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run source audit: %w", err)
	}

	banks := make([]string, 0, len(byBank))
	for bank := range byBank {
		banks = append(banks, bank)
	}
	sort.Strings(banks)

	var total, empty int
	for _, bank := range banks {
		count := len(byBank[bank])
		monitoring.SetOffersAvailable(bank, count)
		total += count
		if count == 0 {
			empty++
			j.logger.WarnContext(ctx, "Bank source provides no usable offers.", slog.String("bank", bank))
			continue
		}
		j.logger.DebugContext(ctx, "Bank source audited.", slog.String("bank", bank), slog.Int("offers", count))
	}

	j.logger.InfoContext(ctx, "Offer source audit job finished.",
		slog.Int("banks", len(banks)),
		slog.Int("emptyBanks", empty),
		slog.Int("offers", total),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
