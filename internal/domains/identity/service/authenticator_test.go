package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/identity/repository"
	"storefront-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) GenerateAccessToken(s jwt.Subject) (string, error) {
	args := m.Called(s)
	return args.String(0), args.Error(1)
}

func newUsers(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := repository.NewRepository([]repository.UserRecord{{
		Identity: model.Identity{ID: 5, Name: "Ana", LastName: "Rojas", Email: "ana@duoc.cl", Role: model.RoleCustomer},
		Password: "duoc1234",
	}}, bcrypt.MinCost)
	require.NoError(t, err)
	return repo
}

func TestLogin_Success(t *testing.T) {
	issuer := jwt.NewManager("secret", time.Hour)
	auth := NewAuthenticator(newUsers(t), issuer)

	res, err := auth.Login(context.Background(), model.LoginRequest{Email: " ANA@duoc.cl ", Password: "duoc1234"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), res.User.ID)
	claims, err := issuer.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	id := IdentityFromClaims(claims)
	assert.Equal(t, *res.User, *id)
}

func TestLogin_WrongPassword(t *testing.T) {
	issuer := &mockIssuer{}
	auth := NewAuthenticator(newUsers(t), issuer)

	_, err := auth.Login(context.Background(), model.LoginRequest{Email: "ana@duoc.cl", Password: "nope"})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	issuer.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	auth := NewAuthenticator(newUsers(t), &mockIssuer{})

	_, err := auth.Login(context.Background(), model.LoginRequest{Email: "otro@duoc.cl", Password: "duoc1234"})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_InvalidRequest(t *testing.T) {
	auth := NewAuthenticator(newUsers(t), &mockIssuer{})

	_, err := auth.Login(context.Background(), model.LoginRequest{Email: "not-an-email"})

	assert.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrInvalidCredentials))
}

func TestLogin_IssuerFailure(t *testing.T) {
	issuer := &mockIssuer{}
	issuer.On("GenerateAccessToken", mock.Anything).Return("", errors.New("boom"))
	auth := NewAuthenticator(newUsers(t), issuer)

	_, err := auth.Login(context.Background(), model.LoginRequest{Email: "ana@duoc.cl", Password: "duoc1234"})

	assert.Error(t, err)
	issuer.AssertExpectations(t)
}
