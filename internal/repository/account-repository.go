package repository

import (
	"errors"

	"github.com/nqvinh-dev/minishop/internal/domain"
	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateAccount(acc *domain.Account) error
	FindByEmail(email string) (*domain.Account, error)
	FindByUsername(username string) (*domain.Account, error)
	FindByPhone(phone string) (*domain.Account, error)
	FindByID(id int64) (*domain.Account, error)

	// RecordOtpFailure bumps the attempt counter and flips the account
	// to Locked when the counter reaches the limit, in one conditional
	// UPDATE. Returns the counter and status after the write.
	RecordOtpFailure(id int64) (int, domain.AccountStatus, error)

	// ActivateAccount moves Pending -> Active, clears the code and
	// resets the counter, guarded on the stored code still matching.
	// Returns false when no row matched.
	ActivateAccount(id int64, otp string) (bool, error)

	// ResetOtp stores a fresh code with a full attempt budget. Locked
	// accounts never match. Returns false when no row matched.
	ResetOtp(id int64, otp string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(acc *domain.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}
	return r.db.Create(acc).Error
}

func (r *accountRepository) findOne(query string, arg interface{}) (*domain.Account, error) {
	acc := &domain.Account{}
	err := r.db.First(acc, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (r *accountRepository) FindByEmail(email string) (*domain.Account, error) {
	return r.findOne("email = ?", email)
}

func (r *accountRepository) FindByUsername(username string) (*domain.Account, error) {
	return r.findOne("username = ?", username)
}

func (r *accountRepository) FindByPhone(phone string) (*domain.Account, error) {
	return r.findOne("phone = ?", phone)
}

func (r *accountRepository) FindByID(id int64) (*domain.Account, error) {
	return r.findOne("id = ?", id)
}

func (r *accountRepository) RecordOtpFailure(id int64) (int, domain.AccountStatus, error) {
	err := r.db.Model(&domain.Account{}).
		Where("id = ? AND status <> ?", id, domain.StatusLocked).
		Updates(map[string]interface{}{
			"otp_attempts": gorm.Expr("otp_attempts + 1"),
			"status": gorm.Expr(
				"CASE WHEN otp_attempts + 1 >= ? THEN ? ELSE status END",
				domain.MaxOtpAttempts, domain.StatusLocked,
			),
		}).Error
	if err != nil {
		return 0, 0, err
	}

	acc := &domain.Account{}
	if err := r.db.Select("otp_attempts", "status").First(acc, "id = ?", id).Error; err != nil {
		return 0, 0, err
	}
	return acc.OtpAttempts, acc.Status, nil
}

func (r *accountRepository) ActivateAccount(id int64, otp string) (bool, error) {
	res := r.db.Model(&domain.Account{}).
		Where("id = ? AND status = ? AND otp = ?", id, domain.StatusPending, otp).
		Updates(map[string]interface{}{
			"status":       domain.StatusActive,
			"otp":          nil,
			"otp_attempts": 0,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *accountRepository) ResetOtp(id int64, otp string) (bool, error) {
	res := r.db.Model(&domain.Account{}).
		Where("id = ? AND status <> ?", id, domain.StatusLocked).
		Updates(map[string]interface{}{
			"otp":          otp,
			"otp_attempts": 0,
		})
	return res.RowsAffected > 0, res.Error
}
