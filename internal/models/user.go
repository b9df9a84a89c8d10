package models

import "time"

// User is a registered job seeker. Rows are never deleted; the verified
// flag flips false to true exactly once.
type User struct {
	ID                     uint       `gorm:"primarykey" json:"id"`
	FirstName              string     `gorm:"not null" json:"first_name"`
	MiddleName             string     `gorm:"default:''" json:"middle_name"`
	Surname                string     `gorm:"not null" json:"surname"`
	Email                  string     `gorm:"uniqueIndex;not null" json:"email"`
	Mobile                 string     `gorm:"not null" json:"mobile"`
	AadhaarNumber          string     `gorm:"not null" json:"-"`
	PANNumber              string     `gorm:"not null" json:"-"`
	PasswordHash           string     `gorm:"not null" json:"-"`
	Education              string     `gorm:"not null" json:"education"`
	CurrentLocation        string     `gorm:"not null" json:"current_location"`
	EmploymentHistory      string     `gorm:"type:text" json:"employment_history"`
	Certifications         string     `gorm:"type:text" json:"certifications"`
	PrevEmploymentExchange bool       `gorm:"default:false" json:"prev_employment_exchange"`
	Verified               bool       `gorm:"default:false;index" json:"verified"`
	ResumePath             string     `gorm:"default:''" json:"-"`
	GeneratedResumePath    string     `gorm:"default:''" json:"-"`
	LastLoginAt            *time.Time `json:"last_login_at"`
	CreatedAt              time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// FullName joins the name parts, skipping a blank middle name.
func (u *User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.Surname
	}
	return u.FirstName + " " + u.MiddleName + " " + u.Surname
}
