package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradewell/storefront/config"
	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	circuitbreaker "github.com/tradewell/storefront/internal/infrastructure/circuit-breaker"
	"github.com/tradewell/storefront/pkg/errs"
)

func newUserServiceFixture() (*fakeUserRepo, UserService) {
	repo := newFakeUserRepo()
	conf := &config.Config{JWTSecret: "test-secret"}
	return repo, CreateUserService(repo, circuitbreaker.CreateCircuitBreaker("test"), conf)
}

func registerRequest() dto.UserRequest {
	return dto.UserRequest{
		Name:     "Asha Traders",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo, svc := newUserServiceFixture()

	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	stored, err := repo.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.NotEqual(t, "s3cret-pass", stored.HashedPassword)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, stored.ID.Hex(), resp.UserID)
	assert.Equal(t, domain.RoleUser, resp.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newUserServiceFixture()

	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	err := svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
}

func TestRegister_MissingFields(t *testing.T) {
	_, svc := newUserServiceFixture()

	assert.ErrorIs(t, svc.Register(context.Background(), dto.UserRequest{Email: "asha@example.com"}), errs.ErrClient)
	assert.ErrorIs(t, svc.Register(context.Background(), dto.UserRequest{Password: "pass"}), errs.ErrClient)
}

func TestLogin_Failures(t *testing.T) {
	_, svc := newUserServiceFixture()
	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentialsEmail)
}

func TestOAuthRegistrationRoundTrip(t *testing.T) {
	repo, svc := newUserServiceFixture()

	token, err := svc.IssuePendingRegistrationToken("Asha Traders", "asha@example.com", "google")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resp, err := svc.CompleteOAuthRegistration(context.Background(), dto.CompleteOAuthRequest{
		Token: token,
		Phone: "9876543210",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Asha Traders", resp.Name)
	assert.Equal(t, domain.RoleUser, resp.Role)

	stored, err := repo.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "google", stored.OAuthProvider)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.Equal(t, "9876543210", stored.Phone)
}

func TestCompleteOAuthRegistration_ExistingEmail(t *testing.T) {
	_, svc := newUserServiceFixture()
	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	token, err := svc.IssuePendingRegistrationToken("Asha Traders", "asha@example.com", "google")
	require.NoError(t, err)

	_, err = svc.CompleteOAuthRegistration(context.Background(), dto.CompleteOAuthRequest{Token: token})

	assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
}

func TestCompleteOAuthRegistration_BadToken(t *testing.T) {
	_, svc := newUserServiceFixture()

	_, err := svc.CompleteOAuthRegistration(context.Background(), dto.CompleteOAuthRequest{Token: "not-a-token"})

	assert.Error(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	repo, svc := newUserServiceFixture()
	require.NoError(t, svc.Register(context.Background(), registerRequest()))

	require.NoError(t, svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "asha@example.com"}))

	stored, err := repo.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiresAt)

	require.NoError(t, svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token:    stored.ResetToken,
		Password: "new-pass",
	}))

	stored, err = repo.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiresAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("new-pass")))

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "new-pass"})
	assert.NoError(t, err)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	_, svc := newUserServiceFixture()

	err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"})

	assert.NoError(t, err)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	repo, svc := newUserServiceFixture()
	expired := time.Now().Add(-time.Minute)
	repo.seed(domain.User{
		Email:               "asha@example.com",
		ResetToken:          "stale-token",
		ResetTokenExpiresAt: &expired,
	})

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "stale-token", Password: "new-pass"})

	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	_, svc := newUserServiceFixture()

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "no-such-token", Password: "new-pass"})

	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestAddAndDeleteAddress(t *testing.T) {
	repo, svc := newUserServiceFixture()
	seeded := repo.seed(domain.User{Email: "asha@example.com", Addresses: []domain.Address{}})

	user, err := svc.AddAddress(context.Background(), seeded.ID.Hex(), dto.AddressRequest{
		Label:   "Warehouse",
		Address: "14 Market Road",
		City:    "Pune",
		PinCode: "411001",
	})

	require.NoError(t, err)
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, "Warehouse", user.Addresses[0].Label)
	assert.False(t, user.Addresses[0].ID.IsZero())

	user, err = svc.DeleteAddress(context.Background(), seeded.ID.Hex(), user.Addresses[0].ID.Hex())

	require.NoError(t, err)
	assert.Empty(t, user.Addresses)
}

func TestDeleteAddress_NotFound(t *testing.T) {
	repo, svc := newUserServiceFixture()
	seeded := repo.seed(domain.User{Email: "asha@example.com"})

	_, err := svc.DeleteAddress(context.Background(), seeded.ID.Hex(), "not-a-hex-id")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.DeleteAddress(context.Background(), seeded.ID.Hex(), "64f000000000000000000000")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
