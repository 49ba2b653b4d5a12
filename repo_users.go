package access

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ErrUserNotFound is returned by the store for lookups with no matching row.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND")

// UsersRepository is the bun backed UserStore. It is constructed with an
// explicit *bun.DB whose lifecycle (open at startup, close at shutdown)
// belongs to the embedding application; there is no ambient connection.
type UsersRepository struct {
	db *bun.DB
}

var _ UserStore = (*UsersRepository)(nil)

func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// GetByEmail finds a user by case-normalized email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by email")
	}

	return record, nil
}

// GetByID finds a user by its id.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by id")
	}

	return record, nil
}

// Create inserts a new user, filling id and role defaults. A violated unique
// email constraint surfaces as ErrDuplicateEmail; earlier rows are untouched.
func (r *UsersRepository) Create(ctx context.Context, record *User) (*User, error) {
	if record == nil {
		return nil, errors.New("cannot create nil user", errors.CategoryValidation)
	}

	prepareUserDefaults(record)

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}

	return record, nil
}

// CreateUsersTable bootstraps the schema for embedding apps and tests.
func CreateUsersTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
