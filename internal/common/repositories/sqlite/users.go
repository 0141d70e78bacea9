package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/errs"
)

// dateLayout is how birth_date is stored in the TEXT column.
const dateLayout = time.DateOnly

const userColumns = `chat_id, birth_date, language_code, created_at, updated_at`

type usersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) domain.UsersRepository {
	return &usersRepository{
		db: db,
	}
}

func (ur *usersRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE chat_id = ?`
	user, err := scanUser(ur.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, errs.NewStack(err)
	}

	return user, nil
}

func (ur *usersRepository) UpsertUser(ctx context.Context, id int64, birthDate time.Time, lang domain.Language) (*domain.User, error) {
	now := time.Now().UTC().Unix()

	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			birth_date    = excluded.birth_date,
			language_code = excluded.language_code,
			updated_at    = excluded.updated_at
		RETURNING ` + userColumns
	user, err := scanUser(ur.db.QueryRowContext(ctx, query,
		id, domain.DateOf(birthDate).Format(dateLayout), lang.String(), now, now,
	))
	if err != nil {
		return nil, errs.NewStack(err)
	}

	return user, nil
}

func (ur *usersRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := ur.db.ExecContext(ctx, `DELETE FROM users WHERE chat_id = ?`, id)
	if err != nil {
		return false, errs.NewStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errs.NewStack(err)
	}

	return affected > 0, nil
}

func (ur *usersRepository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := ur.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY chat_id`)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errs.NewStack(err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		id        int64
		birthDate string
		langCode  string
		createdAt int64
		updatedAt int64
	)

	if err := row.Scan(&id, &birthDate, &langCode, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	birth, err := time.Parse(dateLayout, birthDate)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:           id,
		BirthDate:    birth,
		LanguageCode: domain.ResolveLanguage(langCode),
		CreatedAt:    time.Unix(createdAt, 0).UTC(),
		UpdatedAt:    time.Unix(updatedAt, 0).UTC(),
	}, nil
}
