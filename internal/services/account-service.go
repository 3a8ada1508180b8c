package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nqvinh-dev/minishop/internal/apperr"
	"github.com/nqvinh-dev/minishop/internal/domain"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/helper"
	"github.com/nqvinh-dev/minishop/internal/interfaces"
	"github.com/nqvinh-dev/minishop/internal/repository"
	"github.com/nqvinh-dev/minishop/pkg/idgen"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// otpEventKey routes OTP mail events to the mail worker.
const otpEventKey = "account.otp"

type AccountService interface {
	Register(input dto.RegisterRequest) error
	Login(input dto.LoginRequest) (dto.TokenPairResponse, error)
	VerifyOtp(input dto.VerifyOtpRequest) error
	ResendOtp(email string) error
	GetProfile(accountID int64) (*dto.ProfileResponse, error)
	DisplayProfile(claims dto.AccessClaims) (string, error)
}

type accountService struct {
	accounts repository.AccountRepository
	tokens   repository.TokenRepository
	auth     helper.TokenAuth
	producer interfaces.ProducerHandler
	log      *zap.SugaredLogger
}

func NewAccountService(
	accounts repository.AccountRepository,
	tokens repository.TokenRepository,
	auth helper.TokenAuth,
	producer interfaces.ProducerHandler,
	log *zap.SugaredLogger,
) AccountService {
	return &accountService{
		accounts: accounts,
		tokens:   tokens,
		auth:     auth,
		producer: producer,
		log:      log,
	}
}

func (s *accountService) Register(input dto.RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)
	fullName := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.Phone)

	if email == "" || username == "" || fullName == "" || phone == "" ||
		strings.TrimSpace(input.Password) == "" {
		return apperr.Validation("Please provide valid inputs")
	}

	var birthday *time.Time
	if strings.TrimSpace(input.Birthday) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(input.Birthday))
		if err != nil {
			return apperr.Validation("Invalid birthday format")
		}
		birthday = &parsed
	}

	// uniqueness: email, then username, then phone, stopping at the
	// first duplicate
	if existing, err := s.accounts.FindByEmail(email); err != nil {
		return apperr.Internal(err)
	} else if existing != nil {
		return apperr.Validation("Email already exists")
	}
	if existing, err := s.accounts.FindByUsername(username); err != nil {
		return apperr.Internal(err)
	} else if existing != nil {
		return apperr.Validation("Username already exists")
	}
	if existing, err := s.accounts.FindByPhone(phone); err != nil {
		return apperr.Internal(err)
	} else if existing != nil {
		return apperr.Validation("Phone number already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	otp, err := helper.GenerateOtp()
	if err != nil {
		return apperr.Internal(err)
	}

	acc := &domain.Account{
		ID:           idgen.NewID(),
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hashedPassword),
		Phone:        phone,
		Birthday:     birthday,
		Otp:          &otp,
		OtpAttempts:  0,
		Status:       domain.StatusPending,
	}

	if err := s.accounts.CreateAccount(acc); err != nil {
		return apperr.Internal(err)
	}

	// the account row is durable at this point; mail delivery failure
	// must not undo it
	s.publishOtpEvent(acc, otp)
	return nil
}

func (s *accountService) Login(input dto.LoginRequest) (dto.TokenPairResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return dto.TokenPairResponse{}, apperr.Auth("Email or password is incorrect")
	}

	acc, err := s.accounts.FindByEmail(email)
	if err != nil {
		return dto.TokenPairResponse{}, apperr.Internal(err)
	}
	if acc == nil {
		// same message as the wrong-password path so callers cannot
		// enumerate accounts
		return dto.TokenPairResponse{}, apperr.NotFound("Email or password is incorrect")
	}

	if err := s.auth.VerifyPassword(password, acc.PasswordHash); err != nil {
		return dto.TokenPairResponse{}, apperr.Auth("Email or password is incorrect")
	}

	switch acc.Status {
	case domain.StatusLocked:
		return dto.TokenPairResponse{}, apperr.Locked("Account is locked")
	case domain.StatusPending:
		return dto.TokenPairResponse{}, apperr.Auth("Account is not verified")
	}

	accessToken, err := s.auth.SignAccessToken(acc.ID)
	if err != nil {
		return dto.TokenPairResponse{}, apperr.Internal(err)
	}
	refreshToken, err := s.auth.SignRefreshToken(acc.ID)
	if err != nil {
		return dto.TokenPairResponse{}, apperr.Internal(err)
	}

	if err := s.tokens.CreateToken(&domain.Token{
		ID:           idgen.NewID(),
		AccountID:    acc.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}); err != nil {
		return dto.TokenPairResponse{}, apperr.Internal(err)
	}

	return dto.TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *accountService) VerifyOtp(input dto.VerifyOtpRequest) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	submitted := strings.TrimSpace(input.Otp)

	acc, err := s.accounts.FindByEmail(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if acc == nil {
		return apperr.NotFound("Account not found")
	}

	if acc.Status == domain.StatusLocked {
		return apperr.Locked("Account is locked")
	}

	// a cleared code never matches, so a reused OTP lands here too
	if acc.Otp == nil || submitted == "" || *acc.Otp != submitted {
		attempts, status, err := s.accounts.RecordOtpFailure(acc.ID)
		if err != nil {
			return apperr.Internal(err)
		}
		if status == domain.StatusLocked {
			return apperr.Locked("Account locked due to too many failed attempts")
		}
		return apperr.InvalidOtp("Invalid OTP", attempts)
	}

	activated, err := s.accounts.ActivateAccount(acc.ID, submitted)
	if err != nil {
		return apperr.Internal(err)
	}
	if !activated {
		// lost a race: the code was replaced or the account locked
		// between read and write
		return apperr.InvalidOtp("Invalid OTP", acc.OtpAttempts)
	}
	return nil
}

func (s *accountService) ResendOtp(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	acc, err := s.accounts.FindByEmail(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if acc == nil {
		return apperr.NotFound("Account not found")
	}
	if acc.Status == domain.StatusLocked {
		return apperr.Locked("Account is locked")
	}

	otp, err := helper.GenerateOtp()
	if err != nil {
		return apperr.Internal(err)
	}

	ok, err := s.accounts.ResetOtp(acc.ID, otp)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.Locked("Account is locked")
	}

	s.publishOtpEvent(acc, otp)
	return nil
}

func (s *accountService) GetProfile(accountID int64) (*dto.ProfileResponse, error) {
	acc, err := s.accounts.FindByID(accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if acc == nil {
		return nil, apperr.NotFound("User not found")
	}

	return &dto.ProfileResponse{
		Email:    acc.Email,
		Username: acc.Username,
		FullName: acc.FullName,
		Phone:    acc.Phone,
		Birthday: acc.Birthday,
	}, nil
}

func (s *accountService) DisplayProfile(claims dto.AccessClaims) (string, error) {
	acc, err := s.accounts.FindByID(claims.ID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if acc == nil {
		return "", apperr.NotFound("User not found")
	}
	// the display name comes from the token payload, not the row
	return claims.FullName, nil
}

func (s *accountService) publishOtpEvent(acc *domain.Account, otp string) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(dto.OtpMailEvent{
		AccountID: acc.ID,
		Email:     acc.Email,
		FullName:  acc.FullName,
		Otp:       otp,
	})
	if err != nil {
		s.log.Warnw("marshal otp event failed", "error", err)
		return
	}

	if err := s.producer.PublishMessage([]byte(otpEventKey), payload); err != nil {
		s.log.Warnw("publish otp event failed", "email", acc.Email, "error", err)
	}
}
