// Package services contains server-side business logic. This file implements
// UserService, which registers accounts and authenticates returning users,
// handing back a signed token on success.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/dmitrijs2005/credkeeper/internal/server/repositories/repomanager"
)

// PasswordHasher turns plaintext passwords into stored hashes and back.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer mints a signed token bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthResult is what a successful Register or Login hands to the transport.
// It never carries the password hash.
type AuthResult struct {
	User  models.PublicUser
	Token string
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
//
// It keeps no mutable state and is safe for concurrent use.
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService wires a UserService over the given handle and repositories.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		log:         log.With("module", "services/user"),
	}
}

// Register stores a new account for email and returns it with a fresh token.
//
// Email and password are expected to be syntactically valid already. An empty
// password yields common.ErrInvalidInput and nothing is written. A taken email
// yields common.ErrEmailTaken. Any other failure is logged and reported as
// common.ErrorInternal.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return nil, common.ErrInvalidInput
		}
		s.log.Error(ctx, "hashing password failed", "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrEmailTaken
		}
		s.log.Error(ctx, "creating user failed", "error", err)
		return nil, common.ErrorInternal
	}

	return s.authenticated(ctx, user)
}

// Login checks password against the account stored for email. Unknown email
// and wrong password both yield the same common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same hashing cost as a wrong password
			s.hasher.Verify(password, s.notFoundHash())
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "looking up user failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.authenticated(ctx, user)
}

// notFoundHash is a real hash no password is expected to match, used to
// keep Login for an unknown email as slow as for a known one.
func (s *UserService) notFoundHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("credkeeper: no such user")
		if err != nil {
			s.log.Warn(context.Background(), "hashing placeholder password failed", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *UserService) authenticated(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error(ctx, "issuing token failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
