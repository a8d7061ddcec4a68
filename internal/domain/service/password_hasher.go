// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash returns a salted one-way hash. Each call uses a fresh salt, so
	// hashing the same password twice yields different strings.
	Hash(password string) (string, error)

	// Check reports whether password produced hash. The comparison is
	// constant-time, and a mismatch or malformed hash is simply false.
	Check(password, hash string) bool
}
