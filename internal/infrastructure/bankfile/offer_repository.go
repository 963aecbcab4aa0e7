package bankfile

import (
	"context"
	"errors"
	"fmt"
	"loan-offer-service/internal/domain/offer"
	"loan-offer-service/internal/infrastructure/monitoring"
	"loan-offer-service/internal/pkg/apperrors"
	"loan-offer-service/internal/pkg/jsonrepair"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type OfferRepository struct {
	fs      afero.Fs
	sources []offer.BankSource
	logger  *slog.Logger
}

// NewOfferRepository reads bank files relative to dataDir. Paths from the
// catalog can not reach outside of it.
func NewOfferRepository(dataDir string, catalog offer.Catalog, logger *slog.Logger) (*OfferRepository, error) {
	base, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve offers data directory %q: %w", dataDir, err)
	}
	return NewOfferRepositoryFs(afero.NewBasePathFs(afero.NewOsFs(), base), catalog, logger), nil
}

func NewOfferRepositoryFs(fs afero.Fs, catalog offer.Catalog, logger *slog.Logger) *OfferRepository {
	if fs == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &OfferRepository{
		fs:      fs,
		sources: catalog.Sources(),
		logger:  logger.With("component", "OfferRepository"),
	}
}

// LoadOffers returns every valid offer of every readable source, in
// registry order. A broken source is logged and skipped.
func (r *OfferRepository) LoadOffers(ctx context.Context) ([]offer.LoanOffer, error) {
	var offers []offer.LoanOffer
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("offer loading interrupted: %w", err)
		}
		offers = append(offers, r.load(ctx, src)...)
	}
	return offers, nil
}

// LoadOffersByBank is used by the source audit. Banks whose file could not
// be used map to an empty slice.
func (r *OfferRepository) LoadOffersByBank(ctx context.Context) (map[string][]offer.LoanOffer, error) {
	byBank := make(map[string][]offer.LoanOffer, len(r.sources))
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("offer loading interrupted: %w", err)
		}
		byBank[src.Bank] = r.load(ctx, src)
	}
	return byBank, nil
}

// load never fails: an unusable source is logged, counted by reason and
// contributes no offers.
func (r *OfferRepository) load(ctx context.Context, src offer.BankSource) []offer.LoanOffer {
	offers, err := r.loadSource(ctx, src)
	if err == nil {
		return offers
	}

	reason := monitoring.ReasonUnreadable
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		reason = appErr.Code
	}
	level := slog.LevelError
	if reason == monitoring.ReasonMissing {
		level = slog.LevelWarn
	}
	r.logger.Log(ctx, level, "Skipping bank source",
		slog.String("bank", src.Bank),
		slog.String("reason", reason),
		slog.Any("error", err),
	)
	monitoring.RecordSourceError(src.Bank, reason)
	return nil
}

func (r *OfferRepository) loadSource(ctx context.Context, src offer.BankSource) ([]offer.LoanOffer, error) {
	path := strings.TrimLeft(src.Path, `/\`)
	logCtx := r.logger.With(slog.String("bank", src.Bank), slog.String("path", path))

	exists, err := afero.Exists(r.fs, path)
	if err != nil || !exists {
		return nil, apperrors.WrapSourceError(errors.Join(afero.ErrFileNotFound, err), monitoring.ReasonMissing,
			"loan offer file not found: "+path)
	}

	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, apperrors.WrapSourceError(err, monitoring.ReasonUnreadable, "failed to read loan offer file: "+path)
	}

	decoded, err := jsonrepair.Decode(raw)
	if err != nil {
		return nil, apperrors.WrapSourceError(err, monitoring.ReasonMalformed, "invalid JSON in loan offer file: "+path)
	}

	records, ok := decoded.([]any)
	if !ok {
		return nil, apperrors.WrapSourceError(fmt.Errorf("got %T", decoded), monitoring.ReasonNotArray,
			"loan offer file is not an array: "+path)
	}

	offers := make([]offer.LoanOffer, 0, len(records))
	for i, record := range records {
		o, err := offer.Normalize(src.Bank, record)
		if err != nil {
			logCtx.WarnContext(ctx, "Skipping invalid loan offer", slog.Int("index", i), slog.Any("error", err))
			monitoring.RecordSkippedRecord(src.Bank)
			continue
		}
		offers = append(offers, o)
	}

	logCtx.DebugContext(ctx, "Loaded loan offers", slog.Int("records", len(records)), slog.Int("valid", len(offers)))
	return offers, nil
}

var _ offer.Repository = (*OfferRepository)(nil)
