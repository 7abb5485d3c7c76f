package interchange

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
)

// Backups never expire; fernet skips the age check for a non-positive TTL.
const noExpiry time.Duration = -1

// Sealer encrypts and authenticates backup archives with a fernet key.
type Sealer struct {
	key *fernet.Key
}

// NewSealer decodes a base64 fernet key.
func NewSealer(encodedKey string) (*Sealer, error) {
	k, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid backup key: %w", err)
	}
	return &Sealer{key: k}, nil
}

// GenerateKey returns a new random key in the encoding NewSealer accepts.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return k.Encode(), nil
}

// Seal encrypts data into a fernet token.
func (s *Sealer) Seal(data []byte) ([]byte, error) {
	tok, err := fernet.EncryptAndSign(data, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt backup: %w", err)
	}
	return tok, nil
}

// Open verifies and decrypts a token produced by Seal.
func (s *Sealer) Open(token []byte) ([]byte, error) {
	msg := fernet.VerifyAndDecrypt(token, noExpiry, []*fernet.Key{s.key})
	if msg == nil {
		return nil, fmt.Errorf("%w: cannot decrypt with the configured key", apperrors.ErrInvalidBackup)
	}
	return msg, nil
}
