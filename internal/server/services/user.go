// Package services implements the application logic behind the HTTP API:
// credential checking and token issuing, plus the provider directory with
// photo presigning and featured-listing caching.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/atelieperto/atelieperto/internal/server/auth"
	sc "github.com/atelieperto/atelieperto/internal/server/config"
	"github.com/atelieperto/atelieperto/internal/server/models"
	"github.com/atelieperto/atelieperto/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// Demo account created at startup so a fresh install can log in immediately.
const (
	demoUsername = "maria"
	demoPassword = "12345"
)

type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *sc.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login checks the supplied credentials and returns the account record with a
// fresh access token. Unknown usernames and wrong passwords are both reported
// as common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &models.AuthenticatedUser{User: *user, Token: token}, nil
}

// GetByID returns the account record behind a previously issued token.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Bootstrap creates the demo account when none exists. It is idempotent: if
// the account already exists, it does nothing.
func (s *UserService) Bootstrap(ctx context.Context) error {
	_, err := s.repo.GetByUsername(ctx, demoUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, &models.User{
		Username:     demoUsername,
		Email:        "maria.demo@atelieperto.com",
		FirstName:    "Maria",
		LastName:     "Silva",
		Gender:       "female",
		Image:        "https://via.placeholder.com/150",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("error creating demo user: %v", err)
	}

	return nil
}
