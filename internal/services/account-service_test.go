package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/nqvinh-dev/minishop/internal/apperr"
	"github.com/nqvinh-dev/minishop/internal/domain"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/helper"
	"github.com/nqvinh-dev/minishop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// mockProducer records published OTP events.
type mockProducer struct {
	keys     []string
	payloads []string
	err      error
}

func (m *mockProducer) PublishMessage(key, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, string(key))
	m.payloads = append(m.payloads, string(value))
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.Token{}, &domain.Product{}))
	return db
}

func newAccountService(t *testing.T) (AccountService, *gorm.DB, *mockProducer) {
	t.Helper()

	db := newTestDB(t)
	accountRepo := repository.NewAccountRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	auth := helper.SetupTokenAuth(testTokenConfig(), accountRepo)
	producer := &mockProducer{}
	svc := NewAccountService(accountRepo, tokenRepo, auth, producer, zap.NewNop().Sugar())
	return svc, db, producer
}

func testTokenConfig() helper.TokenConfig {
	return helper.TokenConfig{
		AccessSecret:  "access-test-secret",
		RefreshSecret: "refresh-test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	}
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		FullName: "Alice Nguyen",
		Password: "secret123",
		Phone:    "0901234567",
		Birthday: "2000-01-15",
	}
}

func loadAccount(t *testing.T, db *gorm.DB, email string) *domain.Account {
	t.Helper()
	acc := &domain.Account{}
	require.NoError(t, db.First(acc, "email = ?", email).Error)
	return acc
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	appErr, ok := err.(*apperr.Error)
	require.True(t, ok, "expected *apperr.Error, got %T (%v)", err, err)
	return appErr.Kind
}

func TestRegisterCreatesPendingAccountWithOtp(t *testing.T) {
	svc, db, producer := newAccountService(t)

	require.NoError(t, svc.Register(registerRequest()))

	acc := loadAccount(t, db, "alice@example.com")
	assert.Equal(t, domain.StatusPending, acc.Status)
	assert.Equal(t, 0, acc.OtpAttempts)
	require.NotNil(t, acc.Otp)
	assert.Len(t, *acc.Otp, 6)
	assert.NotEqual(t, "secret123", acc.PasswordHash)
	require.NotNil(t, acc.Birthday)

	require.Len(t, producer.payloads, 1)
	assert.Equal(t, "account.otp", producer.keys[0])
	assert.Contains(t, producer.payloads[0], *acc.Otp)
	assert.Contains(t, producer.payloads[0], "alice@example.com")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))

	cases := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		message string
	}{
		{"email", func(r *dto.RegisterRequest) {
			r.Username = "bob"
			r.Phone = "0907777777"
		}, "Email already exists"},
		{"username", func(r *dto.RegisterRequest) {
			r.Email = "bob@example.com"
			r.Phone = "0907777777"
		}, "Username already exists"},
		{"phone", func(r *dto.RegisterRequest) {
			r.Email = "bob@example.com"
			r.Username = "bob"
		}, "Phone number already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.mutate(&req)
			err := svc.Register(req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, kindOf(t, err))
			assert.Equal(t, tc.message, err.Error())
		})
	}

	// no second row was created
	var count int64
	require.NoError(t, db.Model(&domain.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterNotificationFailureDoesNotRollBack(t *testing.T) {
	svc, db, producer := newAccountService(t)
	producer.err = assert.AnError

	require.NoError(t, svc.Register(registerRequest()))
	acc := loadAccount(t, db, "alice@example.com")
	assert.Equal(t, domain.StatusPending, acc.Status)
}

func TestVerifyOtpActivatesAccount(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	otp := *loadAccount(t, db, "alice@example.com").Otp

	require.NoError(t, svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: otp}))

	acc := loadAccount(t, db, "alice@example.com")
	assert.Equal(t, domain.StatusActive, acc.Status)
	assert.Nil(t, acc.Otp)
	assert.Equal(t, 0, acc.OtpAttempts)

	// the old code cannot be replayed once cleared
	err := svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: otp})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidOtp, kindOf(t, err))
}

func TestVerifyOtpAttemptCounterAndLockout(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))

	// attempts 1-4: invalid with an increasing counter, still pending
	for want := 1; want <= 4; want++ {
		err := svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: "000000"})
		require.Error(t, err)
		appErr := err.(*apperr.Error)
		assert.Equal(t, apperr.KindInvalidOtp, appErr.Kind)
		assert.Equal(t, want, appErr.Attempts)

		acc := loadAccount(t, db, "alice@example.com")
		assert.Equal(t, domain.StatusPending, acc.Status)
		assert.Equal(t, want, acc.OtpAttempts)
	}

	// attempt 5 locks in the same call
	err := svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: "000000"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindLocked, kindOf(t, err))
	assert.Equal(t, domain.StatusLocked, loadAccount(t, db, "alice@example.com").Status)
}

func TestLockedAccountRejectsAllOtpOperations(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	otp := *loadAccount(t, db, "alice@example.com").Otp

	for i := 0; i < domain.MaxOtpAttempts; i++ {
		_ = svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: "000000"})
	}
	require.Equal(t, domain.StatusLocked, loadAccount(t, db, "alice@example.com").Status)

	// even the correct code is refused now
	err := svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: otp})
	require.Error(t, err)
	assert.Equal(t, apperr.KindLocked, kindOf(t, err))

	err = svc.ResendOtp("alice@example.com")
	require.Error(t, err)
	assert.Equal(t, apperr.KindLocked, kindOf(t, err))

	// lock is terminal
	assert.Equal(t, domain.StatusLocked, loadAccount(t, db, "alice@example.com").Status)
}

func TestVerifyOtpUnknownAccount(t *testing.T) {
	svc, _, _ := newAccountService(t)

	err := svc.VerifyOtp(dto.VerifyOtpRequest{Email: "ghost@example.com", Otp: "123456"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestResendOtpIssuesFreshCodeAndResetsBudget(t *testing.T) {
	svc, db, producer := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	first := *loadAccount(t, db, "alice@example.com").Otp

	// burn some attempts first
	for i := 0; i < 3; i++ {
		_ = svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: "000000"})
	}
	require.Equal(t, 3, loadAccount(t, db, "alice@example.com").OtpAttempts)

	require.NoError(t, svc.ResendOtp("alice@example.com"))

	acc := loadAccount(t, db, "alice@example.com")
	assert.Equal(t, domain.StatusPending, acc.Status)
	assert.Equal(t, 0, acc.OtpAttempts)
	require.NotNil(t, acc.Otp)
	assert.Len(t, *acc.Otp, 6)
	assert.NotEqual(t, first, *acc.Otp)

	// register + resend both published
	assert.Len(t, producer.payloads, 2)

	// and the fresh code verifies
	require.NoError(t, svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: *acc.Otp}))
}

func TestLoginIssuesTokenPairAndPersistsRecord(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	otp := *loadAccount(t, db, "alice@example.com").Otp
	require.NoError(t, svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: otp}))

	tokens, err := svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	var rows []domain.Token
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, loadAccount(t, db, "alice@example.com").ID, rows[0].AccountID)
	assert.Equal(t, tokens.AccessToken, rows[0].AccessToken)
	assert.Equal(t, tokens.RefreshToken, rows[0].RefreshToken)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	otp := *loadAccount(t, db, "alice@example.com").Otp
	require.NoError(t, svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: otp}))

	_, wrongPassword := svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginRejectsUnverifiedAndLockedAccounts(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))

	_, err := svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, kindOf(t, err))
	assert.Equal(t, "Account is not verified", err.Error())

	for i := 0; i < domain.MaxOtpAttempts; i++ {
		_ = svc.VerifyOtp(dto.VerifyOtpRequest{Email: "alice@example.com", Otp: "000000"})
	}
	require.Equal(t, domain.StatusLocked, loadAccount(t, db, "alice@example.com").Status)

	_, err = svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindLocked, kindOf(t, err))
}

func TestGetProfileHidesSensitiveFields(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	acc := loadAccount(t, db, "alice@example.com")

	profile, err := svc.GetProfile(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "Alice Nguyen", profile.FullName)
	assert.Equal(t, "0901234567", profile.Phone)
	require.NotNil(t, profile.Birthday)

	_, err = svc.GetProfile(acc.ID + 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestDisplayProfileUsesTokenPayload(t *testing.T) {
	svc, db, _ := newAccountService(t)
	require.NoError(t, svc.Register(registerRequest()))
	acc := loadAccount(t, db, "alice@example.com")

	name, err := svc.DisplayProfile(dto.AccessClaims{
		ID:       acc.ID,
		Username: "alice",
		FullName: "Name From Token",
	})
	require.NoError(t, err)
	assert.Equal(t, "Name From Token", name)

	_, err = svc.DisplayProfile(dto.AccessClaims{ID: acc.ID + 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}
