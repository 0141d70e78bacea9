package cached

import (
	"context"
	"strconv"
	"time"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/patrickmn/go-cache"
)

// usersRepository serves GetUserByID from memory for ttl. GetAllUsers is never
// cached, so dispatcher snapshots always come from storage.
//
// Reads fill the cache with Add, which never overwrites an entry, while writes
// overwrite it with Set. A read racing with a write therefore can not put an
// older row over the written one. DeleteUser leaves a nil tombstone for the
// same reason.
type usersRepository struct {
	next  domain.UsersRepository
	users *cache.Cache
}

func NewUsersRepository(next domain.UsersRepository, ttl time.Duration) domain.UsersRepository {
	return &usersRepository{
		next:  next,
		users: cache.New(ttl, 2*ttl),
	}
}

func (ur *usersRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if cached, ok := ur.users.Get(key(id)); ok {
		if user := cached.(*domain.User); user != nil {
			return copyUser(user), nil
		}
	}

	user, err := ur.next.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user != nil {
		_ = ur.users.Add(key(id), copyUser(user), cache.DefaultExpiration)
	}

	return user, nil
}

func (ur *usersRepository) UpsertUser(ctx context.Context, id int64, birthDate time.Time, lang domain.Language) (*domain.User, error) {
	ur.users.Delete(key(id))

	user, err := ur.next.UpsertUser(ctx, id, birthDate, lang)
	if err != nil {
		return nil, err
	}

	ur.users.SetDefault(key(id), copyUser(user))

	return user, nil
}

func (ur *usersRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := ur.next.DeleteUser(ctx, id)

	ur.users.SetDefault(key(id), (*domain.User)(nil))

	return deleted, err
}

func (ur *usersRepository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return ur.next.GetAllUsers(ctx)
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// copyUser keeps callers from mutating the cached value.
func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
