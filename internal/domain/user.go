package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole is the access level of an account
type UserRole string

const (
	UserRolePlayer    UserRole = "player"
	UserRoleAdmin     UserRole = "admin"
	UserRoleWebmaster UserRole = "webmaster"
)

// AllUserRoles contains all roles from least to most privileged
var AllUserRoles = []UserRole{UserRolePlayer, UserRoleAdmin, UserRoleWebmaster}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRolePlayer, UserRoleAdmin, UserRoleWebmaster:
		return true
	}
	return false
}

func (r UserRole) level() int {
	switch r {
	case UserRoleAdmin:
		return 1
	case UserRoleWebmaster:
		return 2
	}
	return 0
}

// AtLeast reports whether r grants every permission of min.
// Webmasters can do everything admins can, admins everything players can.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.IsValid() && r.level() >= min.level()
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PasswordHash string    `json:"-" gorm:"not null"`
	DisplayName  string    `json:"displayName" gorm:"uniqueIndex;not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'player'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = UserRolePlayer
	}
	return nil
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
