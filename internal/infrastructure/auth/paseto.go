package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

// PasetoIssuer issues v4.local tokens (XChaCha20-Poly1305) carrying the
// subject, iat and exp claims.
type PasetoIssuer struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

func NewPasetoIssuer(symmetricKey []byte, ttl time.Duration, opts ...Option) (*PasetoIssuer, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	o := buildOptions(opts)
	return &PasetoIssuer{key: key, ttl: ttl, now: o.now}, nil
}

func (i *PasetoIssuer) Issue(subject string) (string, error) {
	now := i.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	// SetExpiration drops the fractional second.
	token.SetString("exp", now.Add(i.ttl).Format(time.RFC3339Nano))
	token.SetSubject(subject)

	return token.V4Encrypt(i.key, nil), nil
}

// Verify decrypts the token and checks expiry against the injected clock
// rather than the parser's wall clock.
func (i *PasetoIssuer) Verify(tokenStr string) (string, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(i.key, tokenStr, nil)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	exp, err := token.GetExpiration()
	if err != nil || !i.now().Before(exp) {
		return "", domain.ErrInvalidCredentials
	}

	subject, err := token.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidCredentials
	}
	return subject, nil
}
