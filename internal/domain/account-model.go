package domain

import "time"

type AccountStatus int

// Account lifecycle. Locked is terminal: no OTP operation may move an
// account out of it.
const (
	StatusLocked  AccountStatus = -1
	StatusPending AccountStatus = 0
	StatusActive  AccountStatus = 1
)

// MaxOtpAttempts wrong submissions lock the account.
const MaxOtpAttempts = 5

type Account struct {
	ID           int64         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	FullName     string        `gorm:"not null" json:"fullName"`
	PasswordHash string        `json:"-"`
	Phone        string        `gorm:"uniqueIndex;not null" json:"phone"`
	Birthday     *time.Time    `json:"birthday,omitempty"`
	Otp          *string       `json:"-"`
	OtpAttempts  int           `gorm:"not null;default:0" json:"-"`
	Status       AccountStatus `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (Account) TableName() string { return "db_account" }
