package postgres

import (
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
)

type User struct {
	ID int64 `db:"chat_id"`

	BirthDate    time.Time `db:"birth_date"`
	LanguageCode string    `db:"language_code"`

	UpdatedAt time.Time `db:"updated_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (u *User) CreateDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		BirthDate:    domain.DateOf(u.BirthDate),
		LanguageCode: domain.ResolveLanguage(u.LanguageCode),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}
