package repository

import (
	"errors"

	"github.com/nqvinh-dev/minishop/internal/domain"
	"gorm.io/gorm"
)

type TokenRepository interface {
	CreateToken(token *domain.Token) error
	FindByAccountID(accountID int64) ([]domain.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) CreateToken(token *domain.Token) error {
	if token == nil {
		return errors.New("nil token")
	}
	return r.db.Create(token).Error
}

func (r *tokenRepository) FindByAccountID(accountID int64) ([]domain.Token, error) {
	var tokens []domain.Token
	if err := r.db.Where("account_id = ?", accountID).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
