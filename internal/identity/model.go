package identity

import "time"

// RoleStudent is the default role assigned at registration.
const RoleStudent = "student"

// Account represents a registered account holder.
type Account struct {
	ID             string
	Email          string
	Role           string
	CredentialHash string
	CreatedAt      time.Time
}
