package util

import (
	"testing"
	"time"

	"hp_quiz_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Username: "harry", Email: "harry@example.com", Role: model.RoleEditor}
	user.ID = 12

	token, err := GenerateJWT(user, "jwt-test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "jwt-test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, model.RoleEditor, claims.Role)
	assert.Equal(t, "harry@example.com", claims.Email)
	assert.Equal(t, "harry", claims.Subject)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsForeignIssuer(t *testing.T) {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 12,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := foreign.SignedString([]byte("jwt-test-secret"))
	require.NoError(t, err)

	_, err = ParseJWT(token, "jwt-test-secret")
	assert.Error(t, err)
}
