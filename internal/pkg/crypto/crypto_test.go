package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestDeriveKey(t *testing.T) {
	key := DeriveKey("user-1", "pepper")

	assert.NotEmpty(t, key)
	assert.Equal(t, key, DeriveKey("user-1", "pepper"), "derivation must be deterministic")
	assert.NotEqual(t, key, DeriveKey("user-2", "pepper"), "different users get different keys")
	assert.NotEqual(t, key, DeriveKey("user-1", "other-pepper"), "different secrets get different keys")
}

func TestEncryptDecrypt(t *testing.T) {
	key := DeriveKey("user-1", "pepper")
	in := []payload{{ID: "a", Count: 3}, {ID: "b", Count: 0}}

	blob, err := Encrypt(in, key)
	require.NoError(t, err)
	assert.NotContains(t, blob, `"id":"a"`, "ciphertext must not leak plaintext")

	var out []payload
	require.NoError(t, Decrypt(blob, key, &out))
	assert.Equal(t, in, out)
}

func TestDecryptWrongKey(t *testing.T) {
	blob, err := Encrypt(payload{ID: "a"}, DeriveKey("user-1", "pepper"))
	require.NoError(t, err)

	var out payload
	err = Decrypt(blob, DeriveKey("user-2", "pepper"), &out)
	assert.Error(t, err)
}

func TestEncryptWithoutKey(t *testing.T) {
	_, err := Encrypt(payload{}, "")
	assert.Error(t, err)

	err = Decrypt("{}", "", &payload{})
	assert.Error(t, err)
}
