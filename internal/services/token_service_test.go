package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"oriem/internal/services"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 24*time.Hour)

	token, err := tokens.Issue("jane@x.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@x.com", subject)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	// Negative TTL issues a token that is already past its expiry.
	tokens := services.NewTokenService("test_jwt_secret", -time.Minute)

	token, err := tokens.Issue("jane@x.com")
	assert.NoError(t, err)

	subject, err := tokens.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 24*time.Hour)
	otherTokens := services.NewTokenService("another_secret", 24*time.Hour)

	token, err := otherTokens.Issue("jane@x.com")
	assert.NoError(t, err)

	subject, err := tokens.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	assert.Empty(t, subject)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 24*time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c", "ey.ey.ey"} {
		subject, err := tokens.Verify(garbage)
		assert.ErrorIs(t, err, services.ErrInvalidToken, "token %q", garbage)
		assert.Empty(t, subject)
	}
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 24*time.Hour)

	token, err := tokens.Issue("jane@x.com")
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)

	// Swap in a different payload while keeping the original signature.
	other, err := tokens.Issue("mallory@x.com")
	assert.NoError(t, err)
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	subject, err := tokens.Verify(tampered)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	assert.Empty(t, subject)
}
