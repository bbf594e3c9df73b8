package ports

// PasswordHasher is a salted one-way password hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A mismatch is not an error.
	Verify(digest, plaintext string) bool
}

// TokenIssuer creates and validates stateless bearer tokens bound to a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	// Verify returns the token subject, or domain.ErrInvalidCredentials when
	// the token is tampered, undecodable or expired.
	Verify(token string) (string, error)
}
