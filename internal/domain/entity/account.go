package entity

import (
	"fmt"
	"net/mail"
	"strings"
)

// Account represents a customer account
type Account struct {
	ID        uint64  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Orders    []Order `json:"orders,omitempty"`
}

// Validate ensures the account meets all requirements
func (a *Account) Validate() error {
	if strings.TrimSpace(a.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidArgument)
	}

	if len(a.FirstName) > 50 {
		return fmt.Errorf("%w: first name must not exceed 50 characters", ErrInvalidArgument)
	}

	if strings.TrimSpace(a.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidArgument)
	}

	if len(a.LastName) > 50 {
		return fmt.Errorf("%w: last name must not exceed 50 characters", ErrInvalidArgument)
	}

	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	if len(a.Email) > 100 {
		return fmt.Errorf("%w: email must not exceed 100 characters", ErrInvalidArgument)
	}

	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidArgument, a.Email)
	}

	return nil
}
