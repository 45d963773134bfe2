package ledger

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/tripkit/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError describes one invalid field of an expense.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found with an expense input.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Field + " " + p.Message
	}
	return "invalid expense: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Problems = append(e.Problems, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateExpense checks in against the trip roster before it reaches
// Ledger.AddExpense. It returns a *ValidationError when anything is wrong.
//
// The payer does not have to be a participant.
func ValidateExpense(travelers []models.Traveler, in ExpenseInput) error {
	verr := &ValidationError{}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate expense: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fieldPath(fe), "%s", describe(fe))
		}
	}

	if math.IsInf(in.Amount, 0) {
		verr.add("amount", "must be a finite number")
	} else if !math.IsNaN(in.Amount) && !wholeCents(in.Amount) {
		verr.add("amount", "must not have more than two decimal places")
	}

	if in.Category != "" {
		if _, ok := models.LookupCategory(in.Category); !ok {
			verr.add("category", "unknown category %q", in.Category)
		}
	}

	roster := make(map[string]bool, len(travelers))
	for _, t := range travelers {
		roster[t.ID] = true
	}
	if in.PayerID != "" && !roster[in.PayerID] {
		verr.add("payer_id", "%q is not a traveler on this trip", in.PayerID)
	}
	for _, id := range in.ParticipantIDs {
		if id != "" && !roster[id] {
			verr.add("participant_ids", "%q is not a traveler on this trip", id)
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// centsEpsilon absorbs binary representation error, e.g. 3.34*100.
const centsEpsilon = 1e-6

func wholeCents(amount float64) bool {
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) < centsEpsilon
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "ExpenseInput.participant_ids[1]"; drop the struct name.
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " entry"
	case "unique":
		return "must not contain duplicates"
	case "len", "alpha":
		return "must be a 3-letter currency code"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}
