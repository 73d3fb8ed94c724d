package services

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/tiwiti-backend/internal/auth"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
	repo "github.com/baharkarakas/tiwiti-backend/internal/repository"
)

// UserService is the auth collaborator: registration, credential
// checks and token issuance. It never touches ledger state.
type UserService struct {
	store repo.Store
	tm    *auth.TokenManager
}

func NewUserService(store repo.Store, tm *auth.TokenManager) *UserService {
	return &UserService{store: store, tm: tm}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Role:     models.RoleUser,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.store.Repos().Users.Create(ctx, u.Username, u.Email, hash, u.Role)
}

func (s *UserService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	u, err := s.store.Repos().Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return auth.TokenPair{}, models.ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return auth.TokenPair{}, models.ErrInvalidCredentials
	}
	return s.tm.GeneratePair(u.ID, u.Role)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, models.ErrInvalidCredentials
	}
	// role may have changed since the token was minted
	u, err := s.store.Repos().Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.TokenPair{}, models.ErrInvalidCredentials
	}
	return s.tm.GeneratePair(u.ID, u.Role)
}
