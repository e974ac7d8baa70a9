package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oriem/internal/services"
)

func TestPasswordVerifier_HashAndVerify(t *testing.T) {
	verifier := services.NewPasswordVerifier()

	hash, err := verifier.Hash("secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, verifier.Verify("secret123", hash))
	assert.False(t, verifier.Verify("secret124", hash))
	assert.False(t, verifier.Verify("", hash))
}

func TestPasswordVerifier_HashesAreSalted(t *testing.T) {
	verifier := services.NewPasswordVerifier()

	first, err := verifier.Hash("secret123")
	assert.NoError(t, err)
	second, err := verifier.Hash("secret123")
	assert.NoError(t, err)

	// Same plaintext, different salt, different hash. Both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, verifier.Verify("secret123", first))
	assert.True(t, verifier.Verify("secret123", second))
}

func TestPasswordVerifier_RejectsOtherPlaintexts(t *testing.T) {
	verifier := services.NewPasswordVerifier()

	hash, err := verifier.Hash("correct horse battery staple")
	assert.NoError(t, err)

	otherHash, err := verifier.Hash("another password")
	assert.NoError(t, err)

	assert.False(t, verifier.Verify("correct horse battery staple", otherHash))
	assert.False(t, verifier.Verify("another password", hash))
}
