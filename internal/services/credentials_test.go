package services_test

import (
	"testing"

	"apteekki/internal/apperror"
	"apteekki/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCredentialStore_HashAndVerify(t *testing.T) {
	creds := services.NewCredentialStore(4) // minimal cost to keep tests fast

	hash, err := creds.Hash("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	ok, err := creds.Verify("secret-password", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = creds.Verify("wrong-password", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_SaltVariesPerCall(t *testing.T) {
	creds := services.NewCredentialStore(4)

	first, err := creds.Hash("same-plaintext")
	assert.NoError(t, err)
	second, err := creds.Hash("same-plaintext")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := creds.Verify("same-plaintext", hash)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestCredentialStore_MalformedHash(t *testing.T) {
	creds := services.NewCredentialStore(4)

	ok, err := creds.Verify("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assertKind(t, err, apperror.Validation)
}
