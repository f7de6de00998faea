package user

import (
	"errors"
	"time"

	"loanchain-web/internal/domain/session"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("username already exists")
)

// Table: users. Mock directory behind the login page.
type User struct {
	ID           uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string       `gorm:"column:username;size:64;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;size:72;not null"`
	Role         session.Role `gorm:"column:role;size:16;not null;default:'user'"`
	Name         string       `gorm:"column:name;size:128"`
	Email        string       `gorm:"column:email;size:255"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// Record is the session view of the user; the password never leaves the directory.
func (u User) Record() session.Record {
	return session.Record{Username: u.Username, Role: u.Role, Name: u.Name, Email: u.Email}
}
