package offer

import (
	"encoding/json"
	"loan-offer-service/internal/pkg/apperrors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MsgNotBlank      = "This value should not be blank."
	MsgNotInteger    = "This value should be of type integer."
	MsgNotString     = "This value should be of type string."
	MsgInvalidChoice = "The value you selected is not a valid choice."
	MsgInvalidEmail  = "This value is not a valid email address."
	MsgInvalidValue  = "This value is not valid."

	phoneTag = "loanphone"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// LoanRequest only comes out of RequestValidator.Validate, so every field
// is present and within its allowed set.
type LoanRequest struct {
	Amount   int
	Duration int
	Name     string
	Email    string
	Phone    string
}

type RequestValidator struct {
	catalog  Catalog
	validate *validator.Validate
}

func NewRequestValidator(catalog Catalog) *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(phoneTag, func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic("failed to register phone validation: " + err.Error())
	}
	return &RequestValidator{catalog: catalog, validate: v}
}

// Validate builds a LoanRequest from a decoded JSON object. It checks every
// field and returns all failures as apperrors.ValidationErrors.
func (rv *RequestValidator) Validate(input map[string]any) (LoanRequest, error) {
	var errs apperrors.ValidationErrors
	var req LoanRequest

	req.Amount = choice(input, "amount", rv.catalog.IsAllowedAmount, &errs)
	req.Duration = choice(input, "duration", rv.catalog.IsAllowedDuration, &errs)

	if name, ok := requiredString(input, "name", &errs); ok {
		req.Name = strings.TrimSpace(name)
	}
	if email, ok := requiredString(input, "email", &errs); ok {
		if rv.validate.Var(email, "email") != nil {
			errs.Add("email", MsgInvalidEmail)
		}
		req.Email = email
	}
	if phone, ok := requiredString(input, "phone", &errs); ok {
		if rv.validate.Var(phone, phoneTag) != nil {
			errs.Add("phone", MsgInvalidValue)
		}
		req.Phone = phone
	}

	if err := errs.OrNil(); err != nil {
		return LoanRequest{}, err
	}
	return req, nil
}

func choice(input map[string]any, key string, allowed func(int) bool, errs *apperrors.ValidationErrors) int {
	raw, present := input[key]
	if !present || raw == nil {
		errs.Add(key, MsgNotBlank)
		return 0
	}
	n, ok := toInteger(raw)
	if !ok {
		errs.Add(key, MsgNotInteger)
		return 0
	}
	if !allowed(n) {
		errs.Add(key, MsgInvalidChoice)
		return 0
	}
	return n
}

// requiredString rejects missing, non-string and blank values. The value is
// returned as sent so format checks see surrounding whitespace.
func requiredString(input map[string]any, key string, errs *apperrors.ValidationErrors) (string, bool) {
	raw, present := input[key]
	if !present || raw == nil {
		errs.Add(key, MsgNotBlank)
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		errs.Add(key, MsgNotString)
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		errs.Add(key, MsgNotBlank)
		return "", false
	}
	return s, true
}

// toInteger accepts JSON numbers without a fractional part. Strings are
// rejected even when they look numeric.
func toInteger(v any) (int, bool) {
	var d decimal.Decimal
	switch n := v.(type) {
	case json.Number:
		parsed, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, false
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		return n, true
	default:
		return 0, false
	}
	if !d.IsInteger() {
		return 0, false
	}
	return truncateToInt(d)
}
