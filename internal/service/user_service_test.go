package service_test

import (
	"context"
	"testing"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/dom/dungeon-deck/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SetRole(t *testing.T) {
	testDB, services, _ := newTestServices(t)
	ctx := context.Background()

	webmaster, _ := testutil.NewUserBuilder().WithRole(domain.UserRoleWebmaster).Build(t, testDB.DB)
	player, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		userID  uuid.UUID
		role    domain.UserRole
		wantErr error
	}{
		{name: "promote to admin", userID: player.ID, role: domain.UserRoleAdmin},
		{name: "demote back to player", userID: player.ID, role: domain.UserRolePlayer},
		{name: "unknown role", userID: player.ID, role: "overlord", wantErr: domain.ErrInvalidUserRole},
		{name: "own account", userID: webmaster.ID, role: domain.UserRolePlayer, wantErr: service.ErrSelfModification},
		{name: "missing user", userID: uuid.New(), role: domain.UserRoleAdmin, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.User.SetRole(ctx, webmaster.ID, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.role, got.Role)

			stored, err := services.Auth.GetUserByID(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.role, stored.Role)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	testDB, services, _ := newTestServices(t)
	ctx := context.Background()

	webmaster, _ := testutil.NewUserBuilder().WithRole(domain.UserRoleWebmaster).Build(t, testDB.DB)
	player, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// The player's games go with the account
	world := testutil.SeedWorld(t, testDB.DB)
	game, cards := testutil.BuildGame(t, testDB.DB, player, world.Env, world.CardList())
	testutil.BuildDeck(t, testDB.DB, game, cards[0])

	err := services.User.Delete(ctx, webmaster.ID, webmaster.ID)
	assert.ErrorIs(t, err, service.ErrSelfModification)

	err = services.User.Delete(ctx, webmaster.ID, player.ID)
	require.NoError(t, err)

	_, err = services.Auth.GetUserByID(ctx, player.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	var games int64
	require.NoError(t, testDB.DB.Model(&domain.Game{}).Where("user_id = ?", player.ID).Count(&games).Error)
	assert.Zero(t, games)

	err = services.User.Delete(ctx, webmaster.ID, player.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_List(t *testing.T) {
	testDB, services, _ := newTestServices(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		testutil.NewUserBuilder().Build(t, testDB.DB)
	}

	users, err := services.User.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = services.User.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = services.User.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
