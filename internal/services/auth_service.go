package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"oriem/internal/models"
	"oriem/internal/repositories"
	"oriem/pkg/events"
)

// ErrInvalidCredentials is returned on login when the email is unknown or the
// password is wrong. The two cases are deliberately indistinguishable so the
// caller cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService orchestrates the credential store, password verifier and token
// service to implement signup, login and identity lookup. It holds no state
// of its own across calls.
type AuthService struct {
	userRepo  repositories.UserRepository
	passwords *PasswordVerifier
	tokens    *TokenService
	publisher events.Publisher // optional, nil disables eventing
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, passwords *PasswordVerifier, tokens *TokenService, publisher events.Publisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		publisher: publisher,
	}
}

// Signup hashes the password and persists a new user record. It fails with
// repositories.ErrEmailTaken when the email is already registered; the unique
// index backs the check, so a concurrent duplicate signup loses cleanly.
func (s *AuthService) Signup(fullName, email, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, repositories.ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: fullName,
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if err := s.publisher.PublishUserRegistered(event); err != nil {
			// Eventing is best effort; the signup itself already succeeded.
			log.Printf("Failed to publish user registered event for %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login checks the credentials and issues a bearer token on success.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.passwords.Verify(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// CurrentUser looks up the identity behind a verified token subject. A valid
// token can outlive its account, so a missing subject surfaces as
// repositories.ErrUserNotFound rather than an invalid-token failure.
func (s *AuthService) CurrentUser(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}

// Tokens exposes the token service for middleware wiring.
func (s *AuthService) Tokens() *TokenService {
	return s.tokens
}
