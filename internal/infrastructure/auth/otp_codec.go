package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// OtpCodecImpl implements domain.OtpCodec. Codes are fixed-length
// decimal strings drawn from crypto/rand; envelopes are AES-256-GCM
// sealed JSON payloads, so any tampering fails the auth tag check.
type OtpCodecImpl struct {
	key    []byte
	length int
}

// NewOtpCodec creates a codec from a hex-encoded 32-byte key
func NewOtpCodec(keyHex string, length int) (domain.OtpCodec, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex envelope key: %w", err)
	}
	if len(key) != 32 {
		return nil, errors.New("invalid envelope key length: must be 32 bytes for AES-256")
	}
	if length <= 0 {
		return nil, errors.New("otp code length must be positive")
	}
	return &OtpCodecImpl{key: key, length: length}, nil
}

// GenerateCode implements domain.OtpCodec
func (c *OtpCodecImpl) GenerateCode() (string, error) {
	digits := make([]byte, c.length)

	for i := 0; i < c.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

// EncodeEnvelope implements domain.OtpCodec. Output is base64url of
// nonce + ciphertext + tag.
func (c *OtpCodecImpl) EncodeEnvelope(payload *domain.OtpEnvelope) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope payload: %w", err)
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// DecodeEnvelope implements domain.OtpCodec. Any integrity failure is
// reported as ErrEnvelopeInvalid; no partial payload is ever returned.
func (c *OtpCodecImpl) DecodeEnvelope(envelope string) (*domain.OtpEnvelope, error) {
	sealed, err := base64.URLEncoding.DecodeString(envelope)
	if err != nil {
		return nil, domain.ErrEnvelopeInvalid
	}

	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, domain.ErrEnvelopeInvalid
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrEnvelopeInvalid
	}

	var payload domain.OtpEnvelope
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, domain.ErrEnvelopeInvalid
	}

	return &payload, nil
}

func (c *OtpCodecImpl) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}
	return gcm, nil
}
