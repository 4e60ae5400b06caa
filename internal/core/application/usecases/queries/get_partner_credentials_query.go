package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetPartnerCredentialsQueryIsNotConstructed = errors.New(
	"GetPartnerCredentialsQuery must be created via NewGetPartnerCredentialsQuery constructor",
)

// GetPartnerCredentialsQuery retrieves the stored credentials for a login
// email. Used only by the authentication flow; the password hash never
// leaves the HTTP layer.
type GetPartnerCredentialsQuery struct { //nolint:recvcheck //using for validation
	email string

	guard guard.ConstructorGuard
}

// NewGetPartnerCredentialsQuery creates a credentials lookup for the
// given email.
func NewGetPartnerCredentialsQuery(email string) (GetPartnerCredentialsQuery, error) {
	q := GetPartnerCredentialsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setEmail(email); err != nil {
		return GetPartnerCredentialsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartnerCredentialsQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerCredentialsQueryIsNotConstructed)
}

// Email returns the login email being looked up.
func (q GetPartnerCredentialsQuery) Email() string {
	return q.email
}

func (q *GetPartnerCredentialsQuery) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	q.email = email
	return nil
}

// PartnerCredentialsResponse carries what the login flow needs to verify
// a password and mint a token.
type PartnerCredentialsResponse struct {
	ID           kernel.UUID
	Name         string
	PasswordHash string
	Role         string
	Status       string
}
