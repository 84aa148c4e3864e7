package ai

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	keySize   = 32
	argonTime = 3
	argonMem  = 64 * 1024
	argonPar  = 4

	keyCacheSize = 16
)

// KeyOpener decrypts secrets sealed as base64(salt || nonce || ciphertext)
// under an Argon2id-derived AES-256-GCM key. Derived key material is cached
// for the process lifetime so the KDF does not run on every call. The raw
// plaintext is never logged.
type KeyOpener struct {
	cache *lru.Cache
}

func NewKeyOpener() *KeyOpener {
	cache, _ := lru.New(keyCacheSize)
	return &KeyOpener{cache: cache}
}

func (o *KeyOpener) deriveKey(passphrase string, salt []byte) []byte {
	cacheKey := sha256.Sum256(append([]byte(passphrase), salt...))
	if v, ok := o.cache.Get(cacheKey); ok {
		return v.([]byte)
	}
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMem, argonPar, keySize)
	o.cache.Add(cacheKey, key)
	return key
}

// Open decrypts one sealed secret. Any failure is fatal to the caller;
// there is no fallback to an unencrypted or default value.
func (o *KeyOpener) Open(sealed, passphrase string) (string, error) {
	payload, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}

	if len(payload) < saltSize {
		return "", fmt.Errorf("sealed value is too short")
	}
	salt := payload[:saltSize]
	key := o.deriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("new gcm: %w", err)
	}

	rest := payload[saltSize:]
	nonceSize := aead.NonceSize()
	if len(rest) < nonceSize {
		return "", fmt.Errorf("sealed value is too short")
	}
	nonce := rest[:nonceSize]
	ciphertext := rest[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt sealed value: %w", err)
	}
	return string(plaintext), nil
}

// Seal encrypts a secret into the format Open expects. Used by operators
// to produce the sealed API key for the config file.
func Seal(value, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMem, argonPar, keySize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, []byte(value), nil)
	payload := append(salt, nonce...)
	payload = append(payload, ciphertext...)
	return base64.RawStdEncoding.EncodeToString(payload), nil
}
