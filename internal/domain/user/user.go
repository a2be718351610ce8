package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	CreatedAt    time.Time `json:"date"`
}

// Summary is the slice of a user other records are joined with.
type Summary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Avatar: u.AvatarURL}
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Summary, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	// Delete is idempotent: deleting an absent user is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
