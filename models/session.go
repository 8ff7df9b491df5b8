package models

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the principal acting on a request: a user or anonymous.
type Identity struct {
	User *User
}

var Anonymous = Identity{}

func IdentityOf(u *User) Identity {
	return Identity{User: u}
}

func (i Identity) IsAnonymous() bool {
	return i.User == nil
}

// UserID returns 0 for anonymous identities.
func (i Identity) UserID() uint {
	if i.User == nil {
		return 0
	}
	return i.User.ID
}
