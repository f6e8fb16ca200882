package auth

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Validate validates the register input. Username is expected to be
// normalized before validation.
func (i RegisterInput) Validate() error {
	var errs domain.ValidationError

	if i.Username == "" {
		errs.Add("username", "required")
	} else if len(i.Username) < 3 || len(i.Username) > 64 {
		errs.Add("username", "must be 3-64 characters")
	} else if !validUsername(i.Username) {
		errs.Add("username", "may contain only letters, digits, '.', '_' and '-'")
	}

	validatePassword(&errs, i.Password)

	if len(i.FirstName) > 128 {
		errs.Add("first_name", "too long")
	}
	if len(i.LastName) > 128 {
		errs.Add("last_name", "too long")
	}

	return errs.OrNil()
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Username string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs domain.ValidationError

	if i.Username == "" {
		errs.Add("username", "required")
	}
	if i.Password == "" {
		errs.Add("password", "required")
	}

	return errs.OrNil()
}

func validatePassword(errs *domain.ValidationError, password string) {
	switch {
	case password == "":
		errs.Add("password", "required")
	case len(password) < 8:
		errs.Add("password", "must be at least 8 characters")
	case len(password) > 72:
		// bcrypt truncates input beyond 72 bytes
		errs.Add("password", "must be at most 72 characters")
	}
}

func validUsername(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
