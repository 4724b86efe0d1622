package accounts

import "animal-shelter-manager/internal/ports/auth"

// User is a staff or customer account. Passwords are stored as bcrypt hashes
// only.
type User struct {
	Username     string
	PasswordHash string
	Role         auth.Role
}
