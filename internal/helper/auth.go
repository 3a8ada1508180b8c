package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenConfig is injected at construction; secrets and expiries are
// never read from the environment past this point.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type TokenAuth struct {
	cfg      TokenConfig
	accounts repository.AccountRepository
}

// SetupTokenAuth builds the token service. Signing always looks the
// account up fresh, so the repository is a construction dependency.
func SetupTokenAuth(cfg TokenConfig, accounts repository.AccountRepository) TokenAuth {
	return TokenAuth{cfg: cfg, accounts: accounts}
}

type accessTokenClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

type refreshTokenClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignAccessToken issues the short-lived credential carrying
// {id, username, fullName}. Fails if the account no longer exists.
func (a TokenAuth) SignAccessToken(accountID int64) (string, error) {
	acc, err := a.accounts.FindByID(accountID)
	if err != nil {
		return "", err
	}
	if acc == nil {
		return "", errors.New("account not found")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		ID:       acc.ID,
		Username: acc.Username,
		FullName: acc.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.AccessExpiry)),
		},
	})

	signed, err := token.SignedString([]byte(a.cfg.AccessSecret))
	if err != nil {
		return "", errors.New("unable to sign the access token")
	}
	return signed, nil
}

// SignRefreshToken issues the longer-lived credential with the
// intentionally narrower {id, username} payload.
func (a TokenAuth) SignRefreshToken(accountID int64) (string, error) {
	acc, err := a.accounts.FindByID(accountID)
	if err != nil {
		return "", err
	}
	if acc == nil {
		return "", errors.New("account not found")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTokenClaims{
		ID:       acc.ID,
		Username: acc.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.RefreshExpiry)),
		},
	})

	signed, err := token.SignedString([]byte(a.cfg.RefreshSecret))
	if err != nil {
		return "", errors.New("unable to sign the refresh token")
	}
	return signed, nil
}

// ParseAccessToken verifies the signature and expiry and returns the
// decoded payload. Accepts both "Bearer <token>" and a bare token.
func (a TokenAuth) ParseAccessToken(tokenString string) (dto.AccessClaims, error) {
	tokenString = stripBearer(tokenString)
	if tokenString == "" {
		return dto.AccessClaims{}, errors.New("missing token")
	}

	claims := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.cfg.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.AccessClaims{}, errors.New("invalid token")
	}

	return dto.AccessClaims{
		ID:       claims.ID,
		Username: claims.Username,
		FullName: claims.FullName,
	}, nil
}

// VerifyAccessToken is the boolean check: valid or not, no payload
// exposure on failure.
func (a TokenAuth) VerifyAccessToken(tokenString string) bool {
	_, err := a.ParseAccessToken(tokenString)
	return err == nil
}

// VerifyRefreshToken returns the decoded refresh payload or the
// verification failure. Uses the refresh secret for both sign and
// verify.
func (a TokenAuth) VerifyRefreshToken(tokenString string) (dto.RefreshClaims, error) {
	tokenString = stripBearer(tokenString)
	if tokenString == "" {
		return dto.RefreshClaims{}, errors.New("missing token")
	}

	claims := &refreshTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.cfg.RefreshSecret), nil
	})
	if err != nil {
		return dto.RefreshClaims{}, err
	}
	if !token.Valid {
		return dto.RefreshClaims{}, errors.New("invalid token")
	}

	return dto.RefreshClaims{ID: claims.ID, Username: claims.Username}, nil
}

// VerifyPassword runs the constant-time bcrypt comparison.
func (a TokenAuth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}

func stripBearer(tokenString string) string {
	tokenString = strings.TrimSpace(tokenString)
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return tokenString
}
