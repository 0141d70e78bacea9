package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../../mocks/users_repository.go -package=mocks . UsersRepository

// UsersRepository is the user registry. Implementations keep at most one
// record per chat id.
type UsersRepository interface {
	// GetUserByID returns nil, nil when the user is not registered.
	GetUserByID(ctx context.Context, id int64) (*User, error)
	// UpsertUser creates the user or overwrites birth date and language in place.
	UpsertUser(ctx context.Context, id int64, birthDate time.Time, lang Language) (*User, error)
	// DeleteUser reports whether a record existed and was removed.
	DeleteUser(ctx context.Context, id int64) (bool, error)
	// GetAllUsers returns a snapshot of every registered user.
	GetAllUsers(ctx context.Context) ([]*User, error)
}

type User struct {
	ID int64 `json:"id"`

	BirthDate    time.Time `json:"birth_date"`
	LanguageCode Language  `json:"language_code"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}
