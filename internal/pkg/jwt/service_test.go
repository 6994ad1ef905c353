package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_IssueValidate(t *testing.T) {
	s := NewHMACService("secret", time.Minute)
	id := uuid.New()

	tok, err := s.Issue(id)
	require.NoError(t, err)

	c, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Minute)
	past := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return past }
	tok, err := s.Issue(uuid.New())
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", time.Minute).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewHMACService("b", time.Minute).Validate(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("b", time.Minute).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_NotConfigured(t *testing.T) {
	_, err := NewHMACService("", time.Minute).Issue(uuid.New())
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewHMACService("", 0).Validate("x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewHMACService("s", time.Minute).Issue(uuid.Nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
