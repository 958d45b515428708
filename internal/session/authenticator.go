package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authenticator performs the authentication round trip.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

// SimulatedAuthenticator accepts any credentials and derives the user
// deterministically from the email. It stands in for a real backend.
type SimulatedAuthenticator struct {
	// Delay before the round trip resolves.
	Delay time.Duration
}

// Authenticate implements Authenticator.
func (a *SimulatedAuthenticator) Authenticate(ctx context.Context, email, password string) (*User, error) {
	select {
	case <-time.After(a.Delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	name, _, _ := strings.Cut(email, "@")
	return &User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		AvatarURL: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email),
	}, nil
}
