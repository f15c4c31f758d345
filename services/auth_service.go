package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// TokenRevoker records logged-out tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, until time.Time) error
}

type AuthService struct {
	store   *repository.Store
	revoker TokenRevoker
	cost    int
}

func NewAuthService(store *repository.Store, revoker TokenRevoker) *AuthService {
	return &AuthService{store: store, revoker: revoker, cost: bcrypt.DefaultCost}
}

// SetHashCost lowers the bcrypt cost in tests.
func (s *AuthService) SetHashCost(cost int) {
	s.cost = cost
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register always creates a CLIENT.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return nil, newError(KindValidation, "a valid email is required").with("field", "email")
	}
	if len(in.Password) < minPasswordLength {
		return nil, newError(KindValidation, "password must be at least %d characters", minPasswordLength).with("field", "password")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Password: string(hashed), Role: models.RoleClient}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindConflict, "email already registered").with("field", "email")
		}
		return nil, err
	}
	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	invalid := newError(KindUnauthorized, "invalid credentials")

	user, err := s.store.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, invalid
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, actor *models.Identity) (*models.User, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required")
	}
	user, err := s.store.FindUser(ctx, actor.UserID)
	return user, storeError(err, "user")
}

// Logout revokes token until its own expiry.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, token, expiresAt)
}
