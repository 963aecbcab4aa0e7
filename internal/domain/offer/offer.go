package offer

import (
	"cmp"
	"fmt"
	"loan-offer-service/internal/pkg/apperrors"
	"slices"
	"strings"
)

type LoanOffer struct {
	Bank     string
	Amount   int
	Duration int
	Rate     float64
}

type BankSource struct {
	Bank string
	Path string
}

// Catalog is the fixed set of bank sources and allowed request values the
// service is started with. It is immutable; accessors hand out copies.
type Catalog struct {
	sources   []BankSource
	amounts   []int
	durations []int
}

func NewCatalog(sources []BankSource, allowedAmounts, allowedDurations []int) (Catalog, error) {
	if len(sources) == 0 {
		return Catalog{}, fmt.Errorf("%w: at least one bank source is required", apperrors.ErrInvalidArgument)
	}
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if strings.TrimSpace(src.Bank) == "" {
			return Catalog{}, fmt.Errorf("%w: bank source name cannot be empty", apperrors.ErrInvalidArgument)
		}
		if strings.TrimSpace(src.Path) == "" {
			return Catalog{}, fmt.Errorf("%w: path for bank %s cannot be empty", apperrors.ErrInvalidArgument, src.Bank)
		}
		if _, dup := seen[src.Bank]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate bank source %s", apperrors.ErrInvalidArgument, src.Bank)
		}
		seen[src.Bank] = struct{}{}
	}
	if len(allowedAmounts) == 0 {
		return Catalog{}, fmt.Errorf("%w: allowed amounts cannot be empty", apperrors.ErrInvalidArgument)
	}
	if len(allowedDurations) == 0 {
		return Catalog{}, fmt.Errorf("%w: allowed durations cannot be empty", apperrors.ErrInvalidArgument)
	}

	return Catalog{
		sources:   slices.Clone(sources),
		amounts:   slices.Clone(allowedAmounts),
		durations: slices.Clone(allowedDurations),
	}, nil
}

func (c Catalog) Sources() []BankSource {
	return slices.Clone(c.sources)
}

func (c Catalog) AllowedAmounts() []int {
	return slices.Clone(c.amounts)
}

func (c Catalog) AllowedDurations() []int {
	return slices.Clone(c.durations)
}

func (c Catalog) IsAllowedAmount(amount int) bool {
	return slices.Contains(c.amounts, amount)
}

func (c Catalog) IsAllowedDuration(duration int) bool {
	return slices.Contains(c.durations, duration)
}

// FilterAndSort keeps the offers matching amount and duration exactly and
// orders them by ascending rate. Equal rates keep their input order.
func FilterAndSort(offers []LoanOffer, amount, duration int) []LoanOffer {
	matched := make([]LoanOffer, 0, len(offers))
	for _, o := range offers {
		if o.Amount == amount && o.Duration == duration {
			matched = append(matched, o)
		}
	}
	slices.SortStableFunc(matched, func(a, b LoanOffer) int {
		return cmp.Compare(a.Rate, b.Rate)
	})
	return matched
}
