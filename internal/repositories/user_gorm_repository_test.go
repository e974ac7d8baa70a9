package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"oriem/internal/models"
	"oriem/internal/repositories"
)

// setupDB opens an isolated in-memory sqlite database per test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestGORMUserRepository_CreateAndGet(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	user := &models.User{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Password: "$2a$10$notarealhashbutstoredasis",
		IsActive: true,
	}
	assert.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail("jane@x.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Jane Doe", byEmail.FullName)
	assert.True(t, byEmail.IsActive)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "jane@x.com", byID.Email)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMUserRepository(db)

	first := &models.User{FullName: "Jane Doe", Email: "jane@x.com", Password: "h1", IsActive: true}
	assert.NoError(t, repo.Create(first))

	// The unique index rejects the second insert regardless of any caller
	// read-check.
	second := &models.User{FullName: "Someone Else", Email: "jane@x.com", Password: "h2", IsActive: true}
	err := repo.Create(second)
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Where("email = ?", "jane@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGORMUserRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	user, err := repo.GetByEmail("nobody@x.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.Nil(t, user)

	user, err = repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.Nil(t, user)
}
