package security

import (
	"errors"
	"testing"
)

const testFernetKey = "oikBWDid816xrCYZMj_w20YTv1sN4_WhwZK9Kdd9AIs="

func newTestCipher(t *testing.T) *PasswordCipher {
	t.Helper()
	c, err := NewPasswordCipher(testFernetKey)
	if err != nil {
		t.Fatalf("NewPasswordCipher: %v", err)
	}
	return c
}

func TestPasswordCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, p := range []string{"pw1", "correct horse battery staple", "пароль-🔑"} {
		ct, err := c.Encrypt(p)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", p, err)
		}
		if string(ct) == p {
			t.Fatalf("ciphertext equals plaintext for %q", p)
		}
		got, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != p {
			t.Fatalf("round trip: want %q, got %q", p, got)
		}
	}
}

func TestPasswordCipher_DecryptMalformed(t *testing.T) {
	c := newTestCipher(t)

	for _, ct := range [][]byte{nil, []byte("not-a-token"), []byte("gAAAAA")} {
		if _, err := c.Decrypt(ct); !errors.Is(err, ErrDecoding) {
			t.Fatalf("Decrypt(%q): expected ErrDecoding, got %v", ct, err)
		}
	}
}

func TestPasswordCipher_DecryptTampered(t *testing.T) {
	c := newTestCipher(t)

	ct, err := c.Encrypt("pw1")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	tampered := append([]byte(nil), ct...)
	if tampered[len(tampered)-5] == 'A' {
		tampered[len(tampered)-5] = 'B'
	} else {
		tampered[len(tampered)-5] = 'A'
	}

	if _, err := c.Decrypt(tampered); !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
}

func TestPasswordCipher_ForeignKey(t *testing.T) {
	c := newTestCipher(t)
	other, err := NewPasswordCipher("cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4=")
	if err != nil {
		t.Fatalf("NewPasswordCipher: %v", err)
	}

	ct, err := other.Encrypt("pw1")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := c.Decrypt(ct); !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected ErrDecoding for foreign key, got %v", err)
	}
}

func TestNewPasswordCipher_BadKey(t *testing.T) {
	if _, err := NewPasswordCipher("short"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
