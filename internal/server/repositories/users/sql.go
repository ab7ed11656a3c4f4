// Package users implements user persistence on top of database/sql for both
// PostgreSQL (pgx) and SQLite (modernc).
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/google/uuid"
)

const (
	insertUserQuery = `INSERT INTO users (id, email, password_hash)
		 VALUES (?, ?, ?)`

	findUserByEmailQuery = `SELECT id, email, password_hash, favorite_color, favorite_animal
		 FROM users
		 WHERE email = ?`
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	newID   func() string
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect, newID: uuid.NewString}
}

// Insert writes a new user in a single statement. Uniqueness of email is left
// to the database constraint, so two concurrent inserts of the same email can
// never both succeed.
func (r *SQLRepository) Insert(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           r.newID(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertUserQuery), user.ID, user.Email, user.PasswordHash)
	if err != nil {
		if isDuplicateEmail(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		user   models.User
		color  sql.NullString
		animal sql.NullString
	)

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(findUserByEmailQuery), email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &color, &animal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.FavoriteColor = nullableString(color)
	user.FavoriteAnimal = nullableString(animal)

	return &user, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
