package offer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidRecord = errors.New("invalid offer record")

var (
	minInt = decimal.NewFromInt(math.MinInt)
	maxInt = decimal.NewFromInt(math.MaxInt)
)

type field struct {
	name    string
	aliases []string
}

// Bank exports name the same concept differently. Aliases are tried in order
// and the first one holding a non-null value wins.
var (
	amountField   = field{name: "amount", aliases: []string{"montant", "montant_pret", "amount"}}
	durationField = field{name: "duration", aliases: []string{"duree", "duree_pret", "duration"}}
	rateField     = field{name: "rate", aliases: []string{"taux", "taux_pret", "rate"}}
)

// Normalize maps one decoded bank record onto a LoanOffer. Amount and
// duration are truncated toward zero when the source holds fractions.
func Normalize(bank string, record any) (LoanOffer, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return LoanOffer{}, fmt.Errorf("%w: expected an object, got %T", ErrInvalidRecord, record)
	}

	amount, err := amountField.resolveInt(fields)
	if err != nil {
		return LoanOffer{}, err
	}
	duration, err := durationField.resolveInt(fields)
	if err != nil {
		return LoanOffer{}, err
	}
	rate, err := rateField.resolve(fields)
	if err != nil {
		return LoanOffer{}, err
	}

	return LoanOffer{
		Bank:     bank,
		Amount:   amount,
		Duration: duration,
		Rate:     rate.InexactFloat64(),
	}, nil
}

func (f field) resolve(fields map[string]any) (decimal.Decimal, error) {
	for _, key := range f.aliases {
		v, present := fields[key]
		if !present || v == nil {
			continue
		}
		d, ok := toDecimal(v)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: %s (%q) is not numeric", ErrInvalidRecord, f.name, key)
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s is missing", ErrInvalidRecord, f.name)
}

// resolveInt truncates the resolved value toward zero. Values that do not
// fit in an int are rejected rather than wrapped.
func (f field) resolveInt(fields map[string]any) (int, error) {
	d, err := f.resolve(fields)
	if err != nil {
		return 0, err
	}
	n, ok := truncateToInt(d)
	if !ok {
		return 0, fmt.Errorf("%w: %s (%s) is out of range", ErrInvalidRecord, f.name, d.String())
	}
	return n, nil
}

func truncateToInt(d decimal.Decimal) (int, bool) {
	t := d.Truncate(0)
	if t.LessThan(minInt) || t.GreaterThan(maxInt) {
		return 0, false
	}
	return int(t.IntPart()), true
}

// toDecimal accepts JSON numbers and numeric strings.
func toDecimal(v any) (decimal.Decimal, bool) {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		s = strings.TrimSpace(n)
	default:
		return decimal.Decimal{}, false
	}
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
