// Package security holds the two cryptographic primitives of the auth core:
// the reversible password cipher and the access/refresh token codec.
package security

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecoding is returned when stored ciphertext cannot be authenticated or
// decrypted with the configured key.
var ErrDecoding = errors.New("password ciphertext could not be decoded")

// noTTL disables fernet's timestamp check; stored passwords do not age out.
const noTTL = -1

// PasswordCipher encrypts passwords before they reach a store and decrypts
// them on the way back. It is a reversible Fernet cipher, not a password
// hash: rotating the key invalidates every stored password.
type PasswordCipher struct {
	key *fernet.Key
}

// NewPasswordCipher builds a cipher from a url-safe base64 encoded 32-byte
// Fernet key.
func NewPasswordCipher(encodedKey string) (*PasswordCipher, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode fernet key: %w", err)
	}
	return &PasswordCipher{key: key}, nil
}

// Encrypt returns the Fernet token for plaintext.
func (c *PasswordCipher) Encrypt(plaintext string) ([]byte, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}
	return tok, nil
}

// Decrypt reverses Encrypt. Malformed or foreign ciphertext yields ErrDecoding.
func (c *PasswordCipher) Decrypt(ciphertext []byte) (string, error) {
	msg := fernet.VerifyAndDecrypt(ciphertext, noTTL, []*fernet.Key{c.key})
	if msg == nil {
		return "", ErrDecoding
	}
	return string(msg), nil
}
