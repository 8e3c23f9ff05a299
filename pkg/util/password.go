package util

import "golang.org/x/crypto/bcrypt"

// Work factor for password hashing. Cost 12 keeps a single verification in
// the hundreds of milliseconds, slow enough to blunt offline guessing
// without hurting interactive login.
const passwordHashCost = 12

// HashPassword derives a bcrypt hash for storage; the salt is embedded in
// the returned string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain password matches the stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
