package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cret"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, hasher.Compare("not-a-hash", "s3cret"))
}
