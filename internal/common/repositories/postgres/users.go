package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/errs"
)

const userColumns = `chat_id,
			birth_date,
			language_code,
			created_at,
			updated_at`

type usersRepository struct {
	psql *pgxpool.Pool
}

func NewUsersRepository(pool *pgxpool.Pool) domain.UsersRepository {
	return &usersRepository{
		psql: pool,
	}
}

func (ur *usersRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM lifery.users WHERE chat_id = $1`
	user := &User{}
	if err := scanUser(ur.psql.QueryRow(ctx, query, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, errs.NewStack(err)
	}

	return user.CreateDomain(), nil
}

// UpsertUser is a single statement, so concurrent upserts of one chat_id
// serialize on the primary key and the last committed one wins.
func (ur *usersRepository) UpsertUser(ctx context.Context, id int64, birthDate time.Time, lang domain.Language) (*domain.User, error) {
	query := `INSERT INTO lifery.users(
			chat_id,
			birth_date,
			language_code
		)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO UPDATE
		SET birth_date = EXCLUDED.birth_date,
			language_code = EXCLUDED.language_code,
			updated_at = NOW()
		RETURNING ` + userColumns
	user := &User{}
	if err := scanUser(ur.psql.QueryRow(ctx, query, id, domain.DateOf(birthDate), lang.String()), user); err != nil {
		return nil, errs.NewStack(err)
	}

	return user.CreateDomain(), nil
}

func (ur *usersRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM lifery.users WHERE chat_id = $1`
	tag, err := ur.psql.Exec(ctx, query, id)
	if err != nil {
		return false, errs.NewStack(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (ur *usersRepository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM lifery.users ORDER BY chat_id`
	rows, err := ur.psql.Query(ctx, query)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user := &User{}
		if err := scanUser(rows, user); err != nil {
			return nil, errs.NewStack(err)
		}

		users = append(users, user.CreateDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewStack(err)
	}

	return users, nil
}

func scanUser(row pgx.Row, user *User) error {
	return row.Scan(
		&user.ID,
		&user.BirthDate,
		&user.LanguageCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
