package validate

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	icd10Pattern = regexp.MustCompile(`^[A-Za-z][0-9]{2}(\.[0-9A-Za-z]{1,4})?$`)
	ndcPattern   = regexp.MustCompile(`^[0-9]{4,5}-[0-9]{3,4}-[0-9]{1,2}$`)
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the project's custom rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("icd10", validateICD10)
	v.RegisterValidation("ndc", validateNDC)

	return &Validator{validate: v}
}

// Validate implements echo.Validator. Failures come back as a 400 listing
// every offending field.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Struct validates i and returns the raw validator error, for callers
// outside the HTTP layer.
func (v *Validator) Struct(i interface{}) error {
	return v.validate.Struct(i)
}

// Var validates a single value against tag.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateICD10(fl validator.FieldLevel) bool {
	return icd10Pattern.MatchString(fl.Field().String())
}

func validateNDC(fl validator.FieldLevel) bool {
	return ndcPattern.MatchString(fl.Field().String())
}
