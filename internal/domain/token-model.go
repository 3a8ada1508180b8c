package domain

import "time"

// Token keeps the pair issued at login for audit/association. Rows are
// never deduplicated or revoked here.
type Token struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AccountID    int64     `gorm:"index;not null" json:"accountId"`
	AccessToken  string    `gorm:"not null" json:"accessToken"`
	RefreshToken string    `gorm:"not null" json:"refreshToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Token) TableName() string { return "db_token" }
