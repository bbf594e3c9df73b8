package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minitweet/twitter-api/internal/core/domain"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

var pasetoTestKey = []byte("0123456789abcdef0123456789abcdef")

func issuers(t *testing.T, clock *fakeClock, ttl time.Duration) map[string]ports.TokenIssuer {
	t.Helper()
	j, err := NewJWTIssuer("secret", ttl, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("jwt issuer: %v", err)
	}
	p, err := NewPasetoIssuer(pasetoTestKey, ttl, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("paseto issuer: %v", err)
	}
	return map[string]ports.TokenIssuer{"jwt": j, "paseto": p}
}

func TestIssuer_RoundTrip(t *testing.T) {
	for name, issuer := range issuers(t, newClock(), 30*time.Minute) {
		t.Run(name, func(t *testing.T) {
			token, err := issuer.Issue("alice@example.com")
			if err != nil {
				t.Fatalf("issue failed: %v", err)
			}
			subject, err := issuer.Verify(token)
			if err != nil {
				t.Fatalf("verify failed: %v", err)
			}
			if subject != "alice@example.com" {
				t.Fatalf("unexpected subject %q", subject)
			}
		})
	}
}

func TestIssuer_Expiry(t *testing.T) {
	ttl := 30 * time.Minute
	for _, name := range []string{"jwt", "paseto"} {
		t.Run(name, func(t *testing.T) {
			clock := newClock()
			issuer := issuers(t, clock, ttl)[name]
			token, _ := issuer.Issue("bob@example.com")

			clock.t = clock.t.Add(ttl - time.Second)
			if _, err := issuer.Verify(token); err != nil {
				t.Fatalf("expected token to be valid before expiry, got %v", err)
			}

			clock.t = clock.t.Add(time.Second)
			if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected token to be invalid at expiry, got %v", err)
			}
		})
	}
}

func TestIssuer_Expiry_FractionalIssueTime(t *testing.T) {
	ttl := 30 * time.Minute
	for _, name := range []string{"jwt", "paseto"} {
		t.Run(name, func(t *testing.T) {
			clock := newClock()
			clock.t = clock.t.Add(900 * time.Millisecond)
			issued := clock.t
			issuer := issuers(t, clock, ttl)[name]
			token, _ := issuer.Issue("frank@example.com")

			clock.t = issued.Add(ttl - 500*time.Millisecond)
			if _, err := issuer.Verify(token); err != nil {
				t.Fatalf("expected token to be valid half a second before expiry, got %v", err)
			}

			clock.t = issued.Add(ttl)
			if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected token to be invalid at issue+ttl, got %v", err)
			}
		})
	}
}

func TestIssuer_Tampered(t *testing.T) {
	for name, issuer := range issuers(t, newClock(), time.Hour) {
		t.Run(name, func(t *testing.T) {
			token, _ := issuer.Issue("carol@example.com")
			pos := len(token) - 10
			swap := byte('A')
			if token[pos] == 'A' {
				swap = 'B'
			}
			tampered := token[:pos] + string(swap) + token[pos+1:]

			if _, err := issuer.Verify(tampered); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected tampered token to be rejected, got %v", err)
			}
			if _, err := issuer.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected garbage to be rejected, got %v", err)
			}
		})
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	clock := newClock()
	a, _ := NewJWTIssuer("secret-a", time.Hour, WithClock(clock.Now))
	b, _ := NewJWTIssuer("secret-b", time.Hour, WithClock(clock.Now))

	token, _ := a.Issue("dave@example.com")
	if _, err := b.Verify(token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected foreign signature to be rejected, got %v", err)
	}
}

func TestJWTIssuer_UniqueTokens(t *testing.T) {
	issuer, _ := NewJWTIssuer("secret", time.Hour, WithClock(newClock().Now))

	a, _ := issuer.Issue("erin@example.com")
	b, _ := issuer.Issue("erin@example.com")
	if a == b {
		t.Fatalf("expected distinct token ids for tokens issued in the same second")
	}
}

func TestNewPasetoIssuer_KeyLength(t *testing.T) {
	if _, err := NewPasetoIssuer([]byte("short"), time.Hour); err == nil || !strings.Contains(err.Error(), "32 bytes") {
		t.Fatalf("expected key length error, got %v", err)
	}
}
