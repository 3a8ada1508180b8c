package helper

import (
	"testing"
	"time"

	"github.com/nqvinh-dev/minishop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashForTest(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// stubAccountRepo serves the fresh-lookup the token service performs at
// signing time.
type stubAccountRepo struct {
	accounts map[int64]*domain.Account
}

func (s *stubAccountRepo) CreateAccount(acc *domain.Account) error { return nil }

func (s *stubAccountRepo) FindByEmail(email string) (*domain.Account, error) { return nil, nil }

func (s *stubAccountRepo) FindByUsername(username string) (*domain.Account, error) {
	return nil, nil
}

func (s *stubAccountRepo) FindByPhone(phone string) (*domain.Account, error) { return nil, nil }

func (s *stubAccountRepo) FindByID(id int64) (*domain.Account, error) {
	return s.accounts[id], nil
}

func (s *stubAccountRepo) RecordOtpFailure(id int64) (int, domain.AccountStatus, error) {
	return 0, domain.StatusPending, nil
}

func (s *stubAccountRepo) ActivateAccount(id int64, otp string) (bool, error) { return false, nil }

func (s *stubAccountRepo) ResetOtp(id int64, otp string) (bool, error) { return false, nil }

func newTestAuth(accessExpiry, refreshExpiry time.Duration) TokenAuth {
	repo := &stubAccountRepo{accounts: map[int64]*domain.Account{
		7: {ID: 7, Username: "alice", FullName: "Alice Nguyen"},
	}}
	return SetupTokenAuth(TokenConfig{
		AccessSecret:  "access-test-secret",
		RefreshSecret: "refresh-test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}, repo)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	token, err := auth.SignAccessToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice Nguyen", claims.FullName)

	assert.True(t, auth.VerifyAccessToken(token))
	assert.True(t, auth.VerifyAccessToken("Bearer "+token))
}

func TestAccessTokenVerifyIsBoolean(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	assert.False(t, auth.VerifyAccessToken(""))
	assert.False(t, auth.VerifyAccessToken("not-a-token"))

	// a refresh token is not a valid access token: different secret
	refresh, err := auth.SignRefreshToken(7)
	require.NoError(t, err)
	assert.False(t, auth.VerifyAccessToken(refresh))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	token, err := auth.SignRefreshToken(7)
	require.NoError(t, err)

	claims, err := auth.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRefreshVerifyPropagatesFailure(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	// an access token fails refresh verification
	access, err := auth.SignAccessToken(7)
	require.NoError(t, err)
	_, err = auth.VerifyRefreshToken(access)
	require.Error(t, err)
}

func TestExpiredTokensAreRejected(t *testing.T) {
	auth := newTestAuth(-time.Minute, -time.Minute)

	access, err := auth.SignAccessToken(7)
	require.NoError(t, err)
	assert.False(t, auth.VerifyAccessToken(access))

	refresh, err := auth.SignRefreshToken(7)
	require.NoError(t, err)
	_, err = auth.VerifyRefreshToken(refresh)
	require.Error(t, err)
}

func TestSigningFailsForMissingAccount(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	_, err := auth.SignAccessToken(999)
	require.Error(t, err)
	_, err = auth.SignRefreshToken(999)
	require.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	auth := newTestAuth(time.Minute, time.Hour)

	// bcrypt hash of "secret123" is produced on the fly to keep the
	// test independent of any fixed hash
	hash := hashForTest(t, "secret123")
	require.NoError(t, auth.VerifyPassword("secret123", hash))
	require.Error(t, auth.VerifyPassword("wrong", hash))
}
