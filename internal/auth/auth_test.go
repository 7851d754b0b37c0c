package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("alice@example.com", domain.RoleUser, "secret", time.Minute)
	assert.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := MakeToken("alice@example.com", domain.RoleUser, "secret", time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(tok, "other-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := MakeToken("alice@example.com", domain.RoleSpeaker, "secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(tok, "secret")
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
