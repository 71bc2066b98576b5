package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account a task belongs to. Authentication itself happens in an
// external identity service; this table backs ownership checks and the
// special-email expiry policy.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;default:current_timestamp"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// SpecialUser marks an email whose tasks are exempt from the default
// retention horizon.
type SpecialUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the SpecialUser model
func (SpecialUser) TableName() string {
	return "special_users"
}

// BeforeCreate is called before inserting a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate is called before inserting a new special user record
func (s *SpecialUser) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
