package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository/postgres"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/dom/dungeon-deck/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.RegisterInput
		setup     func()
		wantErr   error
		checkUser bool
		wantRole  domain.UserRole
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				DisplayName: "newuser",
				Password:    "password123",
			},
			checkUser: true,
			wantRole:  domain.UserRolePlayer,
		},
		{
			name: "configured webmaster name",
			input: service.RegisterInput{
				DisplayName: cfg.WebmasterName,
				Password:    "password123",
			},
			checkUser: true,
			wantRole:  domain.UserRoleWebmaster,
		},
		{
			name: "blank display name",
			input: service.RegisterInput{
				DisplayName: "   ",
				Password:    "password123",
			},
			wantErr: service.ErrDisplayNameRequired,
		},
		{
			name: "short password",
			input: service.RegisterInput{
				DisplayName: "shortpw",
				Password:    "short",
			},
			wantErr: service.ErrPasswordTooShort,
		},
		{
			name: "duplicate display name",
			input: service.RegisterInput{
				DisplayName: "existinguser",
				Password:    "password123",
			},
			setup: func() {
				// Create existing user
				testutil.NewUserBuilder().
					WithDisplayName("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrDisplayNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.NotNil(t, result.User)
				assert.Equal(t, tt.input.DisplayName, result.User.DisplayName)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, tt.wantRole, result.User.Role)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithDisplayName("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				DisplayName: user.DisplayName,
				Password:    rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				DisplayName: user.DisplayName,
				Password:    "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent user",
			input: service.LoginInput{
				DisplayName: "nonexistent",
				Password:    "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, result.User)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	// Register a user to get a valid token
	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "tokenuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   result.AccessToken,
			wantErr: false,
		},
		{
			name:    "invalid token",
			token:   "invalid.token.here",
			wantErr: true,
		},
		{
			name:    "malformed token",
			token:   "notavalidjwt",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := authService.ValidateToken(tt.token)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, claims)
			assert.Equal(t, result.User.ID.String(), (*claims)["sub"])
			assert.Equal(t, string(domain.UserRolePlayer), (*claims)["role"])
		})
	}

	userID, err := authService.UserIDFromToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithDisplayName("getuserbyid").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr bool
	}{
		{
			name:    "existing user",
			id:      user.ID,
			wantErr: false,
		},
		{
			name:    "non-existent user",
			id:      uuid.New(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authService.GetUserByID(ctx, tt.id)

			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrUserNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.DisplayName, got.DisplayName)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	// Register a user to create a session
	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "logoutuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	// Logout should succeed
	err = authService.Logout(ctx, result.User.ID)
	require.NoError(t, err)

	// Logout again should not error (no sessions to delete)
	err = authService.Logout(ctx, result.User.ID)
	require.NoError(t, err)

	// The refresh token died with the session
	_, err = authService.RefreshTokens(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "refreshuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	t.Run("a new login ends the previous session", func(t *testing.T) {
		again, err := authService.Login(ctx, service.LoginInput{
			DisplayName: "refreshuser",
			Password:    "password123",
		})
		require.NoError(t, err)

		_, err = authService.RefreshTokens(ctx, result.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)

		var sessions int64
		require.NoError(t, testDB.DB.Model(&domain.UserSession{}).Where("user_id = ?", result.User.ID).Count(&sessions).Error)
		assert.Equal(t, int64(1), sessions)

		result = again
	})

	t.Run("rotates the token pair", func(t *testing.T) {
		refreshed, err := authService.RefreshTokens(ctx, result.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, refreshed.User.ID)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, result.RefreshToken, refreshed.RefreshToken)

		// The previous refresh token no longer works
		_, err = authService.RefreshTokens(ctx, result.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)

		result = refreshed
	})

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "no separator", token: "notarefreshtoken"},
		{name: "bad user id", token: "nope.secret"},
		{name: "unknown user", token: uuid.New().String() + ".secret"},
		{name: "wrong secret", token: result.User.ID.String() + ".wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.RefreshTokens(ctx, tt.token)
			assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
		})
	}

	t.Run("expired session", func(t *testing.T) {
		expiring := *cfg
		expiring.RefreshTokenTTL = -time.Minute
		shortLived := service.NewAuthService(repos.User, repos.Session, &expiring)

		login, err := shortLived.Login(ctx, service.LoginInput{
			DisplayName: "refreshuser",
			Password:    "password123",
		})
		require.NoError(t, err)

		_, err = shortLived.RefreshTokens(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "pwuser",
		Password:    "password123",
	})
	require.NoError(t, err)
	userID := result.User.ID

	tests := []struct {
		name    string
		input   service.ChangePasswordInput
		wantErr error
	}{
		{
			name:    "wrong current password",
			input:   service.ChangePasswordInput{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "new password too short",
			input:   service.ChangePasswordInput{CurrentPassword: "password123", NewPassword: "short"},
			wantErr: service.ErrPasswordTooShort,
		},
		{
			name:  "successful change",
			input: service.ChangePasswordInput{CurrentPassword: "password123", NewPassword: "newpassword123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authService.ChangePassword(ctx, userID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	// Old password is rejected, new one accepted
	_, err = authService.Login(ctx, service.LoginInput{DisplayName: "pwuser", Password: "password123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authService.Login(ctx, service.LoginInput{DisplayName: "pwuser", Password: "newpassword123"})
	require.NoError(t, err)

	// Changing the password ended the session issued at registration
	_, err = authService.RefreshTokens(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)

	err = authService.ChangePassword(ctx, uuid.New(), service.ChangePasswordInput{CurrentPassword: "x", NewPassword: "newpassword123"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
