package ports

// PasswordCipher is the reversible cipher repositories apply to the
// password column.
type PasswordCipher interface {
	Encrypt(plaintext string) ([]byte, error)
	Decrypt(ciphertext []byte) (string, error)
}
