package users

import (
	"context"

	"github.com/dmitrijs2005/credkeeper/internal/server/models"
)

// Repository is the only component touching the users table.
//
// Insert assigns a fresh id and reports common.ErrDuplicateEmail when the
// storage uniqueness constraint on email rejects the row. FindByEmail
// reports common.ErrorNotFound for a missing user.
type Repository interface {
	Insert(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
