package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository/postgres"
	"github.com/dom/dungeon-deck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepository_Replace(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	countSessions := func(t *testing.T) int64 {
		t.Helper()
		var n int64
		require.NoError(t, testDB.DB.Model(&domain.UserSession{}).Where("user_id = ?", user.ID).Count(&n).Error)
		return n
	}

	t.Run("keeps only the latest session", func(t *testing.T) {
		for _, hash := range []string{"first", "second"} {
			require.NoError(t, repo.Replace(ctx, &domain.UserSession{
				UserID:           user.ID,
				RefreshTokenHash: hash,
				ExpiresAt:        time.Now().Add(time.Hour),
			}))
		}

		assert.Equal(t, int64(1), countSessions(t))
		got, err := repo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", got.RefreshTokenHash)
	})

	t.Run("concurrent logins leave one session", func(t *testing.T) {
		const logins = 8
		var wg sync.WaitGroup
		errs := make(chan error, logins)
		for i := 0; i < logins; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- repo.Replace(ctx, &domain.UserSession{
					UserID:           user.ID,
					RefreshTokenHash: fmt.Sprintf("hash-%d", i),
					ExpiresAt:        time.Now().Add(time.Hour),
				})
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(1), countSessions(t))
	})

	t.Run("duplicate rows are rejected by the schema", func(t *testing.T) {
		err := testDB.DB.Create(&domain.UserSession{
			UserID:           user.ID,
			RefreshTokenHash: "sneaky",
			ExpiresAt:        time.Now().Add(time.Hour),
		}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("delete by user", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUserID(ctx, user.ID))
		_, err := repo.GetByUserID(ctx, user.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
