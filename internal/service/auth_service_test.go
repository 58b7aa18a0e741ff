package service

import (
	"testing"
	"time"

	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-service-tests"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(env.db), cfg), env
}

func TestRegisterHashesAndForcesPlayerRole(t *testing.T) {
	auth, env := newAuthService(t)

	user := &model.User{
		Username: "harry",
		Email:    "harry@example.com",
		Password: "alohomora42",
		Role:     model.RoleAdmin, // must be ignored
	}
	require.NoError(t, auth.Register(user))

	var stored model.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.Equal(t, model.RoleUser, stored.Role)
	assert.NotEqual(t, "alohomora42", stored.Password)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth, _ := newAuthService(t)

	first := &model.User{Username: "harry", Email: "harry@example.com", Password: "alohomora42"}
	require.NoError(t, auth.Register(first))

	sameEmail := &model.User{Username: "other", Email: "harry@example.com", Password: "alohomora42"}
	assert.ErrorIs(t, auth.Register(sameEmail), util.ErrEmailRegistered)

	sameName := &model.User{Username: "harry", Email: "new@example.com", Password: "alohomora42"}
	assert.ErrorIs(t, auth.Register(sameName), util.ErrUsernameRegistered)
}

func TestLoginChecksCredentialsAndDisabledFlag(t *testing.T) {
	auth, env := newAuthService(t)

	user := &model.User{Username: "harry", Email: "harry@example.com", Password: "alohomora42"}
	require.NoError(t, auth.Register(user))

	token, err := auth.Login("harry@example.com", "alohomora42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret-for-auth-service-tests")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	_, err = auth.Login("harry@example.com", "wrong")
	assert.Error(t, err)

	_, err = auth.Login("nobody@example.com", "alohomora42")
	assert.Error(t, err)

	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", user.ID).Update("disabled", true).Error)
	_, err = auth.Login("harry@example.com", "alohomora42")
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}
