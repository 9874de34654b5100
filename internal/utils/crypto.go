package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateHMAC returns the hex HMAC-SHA256 of the concatenated parts
func GenerateHMAC(secret string, parts ...string) string {
	h := hmac.New(sha256.New, []byte(secret))
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC checks tag against the HMAC of parts in constant time
func VerifyHMAC(tag, secret string, parts ...string) bool {
	return hmac.Equal([]byte(tag), []byte(GenerateHMAC(secret, parts...)))
}

func checkKey(key []byte) error {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return fmt.Errorf("encryption key must be 16, 24, or 32 bytes, got %d", len(key))
	}
	return nil
}

// Encrypt encrypts data using AES-CBC with PKCS#7 padding and returns
// hex(iv || ciphertext)
func Encrypt(data []byte, key []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("input data is empty")
	}
	if err := checkKey(key); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	padding := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)
	for i := 0; i < padding; i++ {
		padded = append(padded, byte(padding))
	}

	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt
func Decrypt(encrypted string, key []byte) ([]byte, error) {
	if len(encrypted) == 0 {
		return nil, fmt.Errorf("encrypted data is empty")
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}

	data, err := hex.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	if len(data) < 2*aes.BlockSize {
		return nil, fmt.Errorf("encrypted data too short: %d bytes", len(data))
	}

	iv := data[:aes.BlockSize]
	ciphertext := data[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid ciphertext length: %d bytes", len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	padding := int(plaintext[len(plaintext)-1])
	if padding > aes.BlockSize || padding == 0 {
		return nil, fmt.Errorf("invalid padding value: %d", padding)
	}
	for i := len(plaintext) - padding; i < len(plaintext); i++ {
		if int(plaintext[i]) != padding {
			return nil, fmt.Errorf("invalid padding bytes at position %d", i)
		}
	}
	return plaintext[:len(plaintext)-padding], nil
}

// Seal encrypts data and tags the ciphertext so tampering is detected on Open
func Seal(data, key []byte, secret string) (ciphertext, tag string, err error) {
	ciphertext, err = Encrypt(data, key)
	if err != nil {
		return "", "", err
	}
	return ciphertext, GenerateHMAC(secret, ciphertext), nil
}

// Open verifies the tag and decrypts
func Open(ciphertext, tag string, key []byte, secret string) ([]byte, error) {
	if !VerifyHMAC(tag, secret, ciphertext) {
		return nil, fmt.Errorf("integrity check failed")
	}
	return Decrypt(ciphertext, key)
}
