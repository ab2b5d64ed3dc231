package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ResolveIdentity maps a raw credential to the user it was issued for.
// No credential, or a credential for a user that no longer exists,
// yields a nil user. A credential that fails verification is an error.
func ResolveIdentity(ctx context.Context, tokens TokenVerifier, users UserFinder, credential string) (*models.User, error) {
	if credential == "" {
		return nil, nil
	}

	sub, err := tokens.Verify(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, nil
	}

	user, err := users.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
