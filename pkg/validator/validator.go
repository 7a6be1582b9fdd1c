package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the account_domain rule
// registered. account_domain requires a dotted, space-free hostname such
// as "acme.com".
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("account_domain", validAccountDomain)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func validAccountDomain(fl validator.FieldLevel) bool {
	domain := fl.Field().String()
	if domain == "" {
		return false
	}
	if strings.ContainsAny(domain, " \t@/") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
