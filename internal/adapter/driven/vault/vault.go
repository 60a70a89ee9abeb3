// Package vault seals and opens user-supplied API credentials with
// AES-256-GCM. It performs no I/O; persistence of the sealed form is the
// credential store's concern.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/jleuth/future-search/internal/domain/model"
)

const (
	// KeySize is the required key length in bytes (AES-256).
	KeySize = 32

	tagSize = 16
)

// ErrDecryptFailed is returned when authentication of the ciphertext fails.
// The stored bytes are suspect; the operation must not be retried and no
// partial plaintext is ever returned.
var ErrDecryptFailed = errors.New("credential decryption failed")

// Vault encrypts and decrypts secrets under a single process-wide key.
// The key is read-only configuration; per-record uniqueness comes entirely
// from the random nonce generated on every Encrypt call.
type Vault struct {
	key []byte
}

// New creates a Vault. key must be exactly 32 bytes.
func New(key []byte) (*Vault, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("vault key must be %d bytes, got %d", KeySize, len(key))
	}
	return &Vault{key: key}, nil
}

// Encrypt seals plaintext and returns the base64-encoded ciphertext, nonce,
// and authentication tag as separate fields.
func (v *Vault) Encrypt(plaintext string) (model.EncryptedSecret, error) {
	gcm, err := v.aead()
	if err != nil {
		return model.EncryptedSecret{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return model.EncryptedSecret{}, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal produces ciphertext || tag; split so the tag is stored separately.
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return model.EncryptedSecret{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Tag:        base64.StdEncoding.EncodeToString(tag),
	}, nil
}

// Decrypt opens a sealed secret. Returns ErrDecryptFailed if the nonce, tag,
// or ciphertext fail to authenticate.
func (v *Vault) Decrypt(secret model.EncryptedSecret) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(secret.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", ErrDecryptFailed)
	}
	nonce, err := base64.StdEncoding.DecodeString(secret.Nonce)
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", ErrDecryptFailed)
	}
	tag, err := base64.StdEncoding.DecodeString(secret.Tag)
	if err != nil {
		return "", fmt.Errorf("decode tag: %w", ErrDecryptFailed)
	}

	gcm, err := v.aead()
	if err != nil {
		return "", err
	}
	if len(nonce) != gcm.NonceSize() || len(tag) != tagSize {
		return "", ErrDecryptFailed
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}

func (v *Vault) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
