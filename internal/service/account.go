package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/tokens"
)

type AccountService struct {
	Accounts  AccountStore
	Catalog   CatalogStore
	Gate      *AccessService
	Events    events.Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Type      string
	CR        string
}

type LoginResult struct {
	User  tokens.Payload `json:"user"`
	Token string         `json:"token"`
}

// Register stores a new account. Shop owners start unapproved.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role, err := models.ParseRole(in.Type)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Unknown user type")
	}
	if in.Username == "" || in.Password == "" {
		return nil, newError(ErrInvalidInput, "Username and password are required")
	}

	digest, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Username:       in.Username,
		Email:          in.Email,
		PasswordDigest: digest,
		Role:           role,
		CR:             in.CR,
	}
	if err := s.Accounts.CreateUserIfNotExists(ctx, u); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, newError(ErrConflict, "A user with that username has already been registered!")
		}
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUser, u.ID.String(), map[string]any{
		"type":      "user_registered",
		"user_id":   u.ID.String(),
		"user_type": u.Role.String(),
	})
	return u, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.Accounts.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrUnauthorized, "Unauthorized: User not found")
		}
		return nil, err
	}
	if !hash.CheckPassword(u.PasswordDigest, password) || !u.CanLogin() {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}

	p := tokens.Payload{ID: u.ID.String(), Username: u.Username, Type: u.Role.String()}
	token, err := tokens.CreateAccessToken(s.JWTSecret, p, time.Now().Add(s.TokenTTL))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{User: p, Token: token}, nil
}

func (s *AccountService) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return newError(ErrInvalidInput, "Password is required")
	}
	u, err := s.Accounts.GetUserByUsername(ctx, username)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	digest, err := hash.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Accounts.UpdatePasswordDigest(ctx, u.ID, digest); err != nil {
		return notFoundOr(err, "User not found")
	}
	return nil
}

// ShopItems lists the shop's catalogue for its owner.
func (s *AccountService) ShopItems(ctx context.Context, shopID, callerID uuid.UUID) ([]models.Item, error) {
	if _, err := s.Gate.RequireShopOwner(ctx, shopID, callerID); err != nil {
		return nil, err
	}
	return s.Catalog.ListShopItems(ctx, shopID)
}
