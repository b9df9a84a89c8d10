package models

import "time"

// UserLoginLog records login attempts for auditing.
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"` // zero on failed lookups
	Email      string    `gorm:"index;not null" json:"email"`
	Method     string    `gorm:"type:varchar(16);index;not null" json:"method"` // password / otp
	Status     string    `gorm:"index;not null" json:"status"`                  // success / failed
	FailReason string    `gorm:"index" json:"fail_reason"`
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`
	RequestID  string    `gorm:"type:varchar(64);index" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
