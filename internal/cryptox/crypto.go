// Package cryptox wraps the symmetric encryption and one-way hashing used for
// stored PII: emails are encrypted, IP addresses are hashed. Raw values never
// reach the database.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var ErrEmptyKey = errors.New("encryption key must not be empty")

// Cipher encrypts and decrypts short strings with AES-256-GCM. The nonce is
// derived deterministically from the plaintext, so encrypting the same value
// twice yields the same ciphertext. That property is load-bearing: stored
// emails are looked up by their ciphertext.
type Cipher struct {
	aead   cipher.AEAD
	macKey []byte
}

// New derives the AES and nonce-MAC keys from the configured secret using
// HKDF-SHA256 and returns a ready cipher.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptyKey
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("datviz-email-encryption"))
	keys := make([]byte, 64)
	if _, err := io.ReadFull(kdf, keys); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(keys[:32])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead, macKey: keys[32:]}, nil
}

func (c *Cipher) nonceFor(plaintext []byte) []byte {
	mac := hmac.New(sha256.New, c.macKey)
	mac.Write(plaintext)
	return mac.Sum(nil)[:c.aead.NonceSize()]
}

// Encrypt returns base64(nonce || ciphertext) for the given plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := c.nonceFor([]byte(plaintext))
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) < c.aead.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// HashIP returns the SHA-256 hex digest of an IP address. Unsalted on purpose:
// identical IPs must hash identically so users can be found by hash.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
