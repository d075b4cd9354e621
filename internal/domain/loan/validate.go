package loan

import (
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/SagarNunugonda/lendwise/internal/apperrors"
)

var rePhone10 = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// phone number = exactly 10 ASCII digits
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return rePhone10.MatchString(fl.Field().String())
	})
	// principal/rate must parse to finite numbers
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return v
}

// ValidateInput checks a candidate record against the input contract and
// names the first offending field. Runs before any I/O on both the client
// store and the service.
func ValidateInput(l Loan) error {
	if l.StartDate.Time.IsZero() {
		return apperrors.NewValidation("startDate", "is required")
	}
	err := validate.Struct(l)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return apperrors.NewValidation("_", err.Error())
	}
	return apperrors.NewValidation(jsonField(ve[0].Field()), message(ve[0]))
}

func jsonField(structField string) string {
	switch structField {
	case "BorrowerName":
		return "borrowerName"
	case "PhoneNumber":
		return "phoneNumber"
	case "Principal":
		return "principal"
	case "InterestMethod":
		return "interestMethod"
	case "InterestRate":
		return "interestRate"
	case "Duration":
		return "duration"
	case "Status":
		return "status"
	default:
		return structField
	}
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "phone10":
		return "must be exactly 10 digits"
	case "finite":
		return "must be a finite number"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return e.Tag() + " validation failed"
	}
}
