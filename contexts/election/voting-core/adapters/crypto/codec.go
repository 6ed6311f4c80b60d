package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	domainerrors "evote/contexts/election/voting-core/domain/errors"

	"golang.org/x/crypto/hkdf"
)

const (
	KeySize   = 32
	NonceSize = 16
)

var keyInfo = []byte("evote credential codec v1")

var ErrEmptySecret = errors.New("credential secret is required")

// AESCodec encrypts credentials with AES-256-GCM. The key is derived from a
// static secret with HKDF-SHA256. Encoded values are base64(nonce || sealed).
type AESCodec struct {
	aead  cipher.AEAD
	nonce io.Reader
}

func NewAESCodec(secret string) (*AESCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	key, err := deriveKey([]byte(secret))
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &AESCodec{aead: aead, nonce: rand.Reader}, nil
}

func deriveKey(secret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, keyInfo)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive credential key: %w", err)
	}
	return key, nil
}

func (c *AESCodec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(c.nonce, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt returns ErrDecryption for anything that is not a value produced by
// Encrypt under the same secret.
func (c *AESCodec) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", domainerrors.ErrDecryption, err)
	}
	if len(raw) < NonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", domainerrors.ErrDecryption)
	}
	plaintext, err := c.aead.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrDecryption, err)
	}
	return string(plaintext), nil
}
