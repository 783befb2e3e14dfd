package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := New("test-secret-key")
	require.NoError(t, err)

	ciphertext, err := c.Encrypt("user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	require.NotEqual(t, "user@example.com", ciphertext)

	plaintext, err := c.Decrypt(ciphertext)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", plaintext)
}

func TestEncryptIsDeterministic(t *testing.T) {
	c, err := New("test-secret-key")
	require.NoError(t, err)

	first, err := c.Encrypt("user@example.com")
	require.NoError(t, err)
	second, err := c.Encrypt("user@example.com")
	require.NoError(t, err)

	require.Equal(t, first, second, "same plaintext must produce the same ciphertext")

	other, err := c.Encrypt("other@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestDifferentKeysCannotDecrypt(t *testing.T) {
	c1, err := New("key-one")
	require.NoError(t, err)
	c2, err := New("key-two")
	require.NoError(t, err)

	ciphertext, err := c1.Encrypt("user@example.com")
	require.NoError(t, err)

	_, err = c2.Decrypt(ciphertext)
	require.Error(t, err)
}

func TestNewRejectsEmptyKey(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("203.0.113.7")
	h2 := HashIP("203.0.113.7")
	require.Equal(t, h1, h2, "identical IPs must hash identically")
	require.Len(t, h1, 64)

	require.NotEqual(t, h1, HashIP("203.0.113.8"))
}

func TestDecryptRejectsGarbage(t *testing.T) {
	c, err := New("test-secret-key")
	require.NoError(t, err)

	_, err = c.Decrypt("not base64!!!")
	require.Error(t, err)

	_, err = c.Decrypt("c2hvcnQ=")
	require.Error(t, err)
}
