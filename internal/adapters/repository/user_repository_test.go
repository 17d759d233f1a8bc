package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func TestSQLUserRepository(t *testing.T) {
	backends := map[string]func(t *testing.T) *SQLUserRepository{
		"sqlite": func(t *testing.T) *SQLUserRepository {
			return NewSQLUserRepository(openTestSQLite(t))
		},
		"postgres": func(t *testing.T) *SQLUserRepository {
			return NewSQLUserRepository(openTestPostgres(t))
		},
		"postgres-pq": func(t *testing.T) *SQLUserRepository {
			return NewSQLUserRepository(openTestPostgresPQ(t))
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			t.Run("Should create a user successfully", func(t *testing.T) {
				email := fmt.Sprintf("test_%s@example.com", uuid.NewString())
				user, err := domain.NewUser(uuid.NewString(), email)
				require.NoError(t, err)
				require.NoError(t, user.SetPassword("passwordStrong123"))

				require.NoError(t, repo.Create(ctx, user))

				saved, err := repo.GetByEmail(ctx, user.Email)
				require.NoError(t, err)
				assert.Equal(t, user.ID, saved.ID)
				assert.Equal(t, user.PasswordHash, saved.PasswordHash)
				assert.False(t, saved.CreatedAt.IsZero(), "timestamps should not be zero")

				byID, err := repo.GetByID(ctx, user.ID)
				require.NoError(t, err)
				assert.Equal(t, user.Email, byID.Email)
			})

			t.Run("Should fail on duplicate email", func(t *testing.T) {
				email := fmt.Sprintf("duplicate_%s@example.com", uuid.NewString())
				user1, _ := domain.NewUser(uuid.NewString(), email)
				user1.PasswordHash = "hash1"
				require.NoError(t, repo.Create(ctx, user1))

				user2, _ := domain.NewUser(uuid.NewString(), email)
				user2.PasswordHash = "hash2"

				assert.ErrorIs(t, repo.Create(ctx, user2), domain.ErrEmailAlreadyExists)
			})

			t.Run("Should return ErrUserNotFound", func(t *testing.T) {
				_, err := repo.GetByID(ctx, uuid.NewString())
				assert.ErrorIs(t, err, domain.ErrUserNotFound)

				_, err = repo.GetByEmail(ctx, "nonexistent@ghost.com")
				assert.ErrorIs(t, err, domain.ErrUserNotFound)
			})
		})
	}
}
