package validate

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Policy is the password strength policy enforced by the "portalpassword"
// rule. The zero value disables every check except MinLength>=1 callers
// should set.
type Policy struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

// Checker validates exchange inputs against struct tags plus the password
// policy. It is safe for concurrent use after construction.
type Checker struct {
	validate *validator.Validate
	policy   Policy
}

// New builds a Checker for the given policy.
func New(policy Policy) (*Checker, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	c := &Checker{validate: v, policy: policy}
	if err := v.RegisterValidation("portalpassword", c.passwordRule); err != nil {
		return nil, fmt.Errorf("validate: register password rule: %w", err)
	}

	return c, nil
}

// Struct validates s and returns the offending field names in declaration
// order. A nil slice means s passed.
func (c *Checker) Struct(s any) []string {
	err := c.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"request"}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describeFieldError(fe))
	}
	return fields
}

// Password applies the strength policy to a bare password value, for flows
// that have no struct to validate.
func (c *Checker) Password(password string) bool {
	return c.checkPassword(password)
}

func (c *Checker) passwordRule(fl validator.FieldLevel) bool {
	return c.checkPassword(fl.Field().String())
}

func (c *Checker) checkPassword(password string) bool {
	if len(password) < c.policy.MinLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if c.policy.RequireUpper && !upper {
		return false
	}
	if c.policy.RequireLower && !lower {
		return false
	}
	if c.policy.RequireDigit && !digit {
		return false
	}
	if c.policy.RequireSpecial && !special {
		return false
	}
	return true
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "eqfield":
		return fe.Field() + " must match " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "portalpassword":
		return fe.Field() + " does not meet the password policy"
	default:
		return fe.Field() + " is invalid"
	}
}
