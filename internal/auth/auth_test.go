package auth

import (
	"testing"
	"time"

	"restaupilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	user := &models.User{Base: models.Base{ID: 7}, Email: "manager@example.com", Role: "admin"}

	token, exp, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "manager@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseRejectsForeignAndExpiredTokens(t *testing.T) {
	user := &models.User{Base: models.Base{ID: 1}, Email: "a@example.com"}

	other, _, err := NewIssuer("other-secret", time.Hour).Issue(user)
	require.NoError(t, err)
	_, err = NewIssuer("test-secret", time.Hour).Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := expired.Issue(user)
	require.NoError(t, err)
	_, err = expired.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = expired.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrBadCredentials)
}
