package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyIterations = 100000
	keyLength     = 32 // AES-256
	nonceLength   = 12 // GCM standard nonce size
)

// Blob is an encrypted payload as persisted: a random nonce plus the
// AES-GCM ciphertext. Serializes to JSON with base64-encoded fields.
type Blob struct {
	IV   []byte `json:"iv"`
	Data []byte `json:"data"`
}

// DeriveKey derives a per-user base64 encryption key from the immutable user id
// and the server-side secret (PBKDF2, SHA-512, 100000 iterations, 32 bytes).
func DeriveKey(userID, secret string) string {
	key := pbkdf2.Key([]byte(userID), []byte(secret), keyIterations, keyLength, sha512.New)
	return base64.StdEncoding.EncodeToString(key)
}

// Encrypt marshals value to JSON and encrypts it with AES-256-GCM under the
// given base64 key, returning the serialized blob.
func Encrypt(value any, base64Key string) (string, error) {
	if base64Key == "" {
		return "", fmt.Errorf("no encryption key")
	}
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}

	gcm, err := newGCM(base64Key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, nonceLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	blob := Blob{
		IV:   iv,
		Data: gcm.Seal(nil, iv, plaintext, nil),
	}
	serialized, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("failed to marshal blob: %w", err)
	}
	return string(serialized), nil
}

// Decrypt reverses Encrypt, unmarshalling the plaintext JSON into out.
func Decrypt(serialized string, base64Key string, out any) error {
	if base64Key == "" {
		return fmt.Errorf("no encryption key")
	}
	var blob Blob
	if err := json.Unmarshal([]byte(serialized), &blob); err != nil {
		return fmt.Errorf("failed to unmarshal blob: %w", err)
	}

	gcm, err := newGCM(base64Key)
	if err != nil {
		return err
	}
	if len(blob.IV) != nonceLength {
		return fmt.Errorf("invalid nonce length %d", len(blob.IV))
	}

	plaintext, err := gcm.Open(nil, blob.IV, blob.Data, nil)
	if err != nil {
		return fmt.Errorf("failed to decrypt blob: %w", err)
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to unmarshal plaintext: %w", err)
	}
	return nil
}

func newGCM(base64Key string) (cipher.AEAD, error) {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
