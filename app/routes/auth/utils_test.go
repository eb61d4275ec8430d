package auth

import (
	"testing"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("letmein123")
	require.NoError(t, err)
	assert.NotEqual(t, "letmein123", hash)

	assert.True(t, CheckPasswordHash("letmein123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("letmein123", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("mgr-1", "admin@institute.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", claims.ManagerID)
	assert.Equal(t, "admin@institute.test", claims.Email)
	assert.Equal(t, "institute-admin", claims.Issuer)
}

// Tokens must work before config.Load has run, falling back to the
// development secret.
func TestJWTWithoutLoadedConfig(t *testing.T) {
	old := config.AppConfig
	config.AppConfig = nil
	defer func() { config.AppConfig = old }()

	token, err := GenerateJWT("mgr-1", "admin@institute.test")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", claims.ManagerID)
}

func TestJWTUsesConfiguredSecret(t *testing.T) {
	old := config.AppConfig
	defer func() { config.AppConfig = old }()

	config.AppConfig = &config.Config{JWTSecret: "secret-one"}
	token, err := GenerateJWT("mgr-1", "admin@institute.test")
	require.NoError(t, err)

	// A token signed under one secret fails validation under another.
	config.AppConfig = &config.Config{JWTSecret: "secret-two"}
	_, err = ValidateJWT(token)
	assert.Error(t, err)

	config.AppConfig = &config.Config{JWTSecret: "secret-one"}
	_, err = ValidateJWT(token)
	assert.NoError(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsTampered(t *testing.T) {
	token, err := GenerateJWT("mgr-1", "admin@institute.test")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}
