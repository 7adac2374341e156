package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/email"
	"github.com/akylbekov/task-tracker/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Tokens are stateless: validity is signature + expiry only, no store lookup.
const defaultJWTTTL = 7 * 24 * time.Hour

type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	logger *slog.Logger
	jwtKey []byte
	jwtTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
		jwtKey: jwtKey,
		jwtTTL: defaultJWTTTL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register hashes the password with bcrypt, persists the user and returns it
// together with a signed JWT. The raw password is never stored.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", domain.ErrEmptyName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.signToken(user)
	if err != nil {
		return nil, "", err
	}

	u.sendWelcomeEmail(ctx, user)

	return user, token, nil
}

// Login authenticates email/password credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *AuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	UserID string
	Name   *string
	Email  *string
}

// UpdateProfile mutates only the supplied fields. Email uniqueness is enforced
// by the store constraint; a conflict surfaces as ErrEmailTaken.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.Name == nil && input.Email == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		input.Name = &name
	}

	user, err := u.users.UpdateProfile(ctx, repository.UpdateProfileInput{
		UserID: input.UserID,
		Name:   input.Name,
		Email:  input.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return user, nil
}

func (u *AuthUsecase) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// sendWelcomeEmail is best-effort: a slow or failing provider must never fail
// the registration request.
func (u *AuthUsecase) sendWelcomeEmail(ctx context.Context, user *domain.User) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	go func() {
		defer cancel()
		subject := "Welcome to Task Tracker"
		body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Happy tracking!</p>", user.Name)
		if err := u.email.Send(sendCtx, user.Email, subject, body); err != nil {
			u.logger.Warn("welcome email", "error", err)
		}
	}()
}
