package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/identity/repository"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateAccessToken(s jwt.Subject) (string, error)
}

// Authenticator checks credentials and issues access tokens
type Authenticator struct {
	users  repository.Repository
	tokens TokenIssuer
}

func NewAuthenticator(users repository.Repository, tokens TokenIssuer) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Login returns ErrInvalidCredentials for an unknown email or a wrong
// password alike
func (a *Authenticator) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Info("login rejected", map[string]interface{}{"user_id": user.ID})
		return nil, model.ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateAccessToken(SubjectOf(&user.Identity))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logger.Info("user logged in", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return &model.LoginResponse{AccessToken: token, User: user.Identity.Clone()}, nil
}

// SubjectOf maps an identity to the token subject
func SubjectOf(id *model.Identity) jwt.Subject {
	return jwt.Subject{
		UserID:   id.ID,
		Email:    id.Email,
		Role:     string(id.Role),
		Name:     id.Name,
		LastName: id.LastName,
	}
}

// IdentityFromClaims rebuilds the identity carried by a verified token
func IdentityFromClaims(c *jwt.Claims) *model.Identity {
	return &model.Identity{
		ID:       c.UserID,
		Name:     c.Name,
		LastName: c.LastName,
		Email:    c.Email,
		Role:     model.Role(c.Role),
	}
}
