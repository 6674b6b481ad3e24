package domain

import "time"

// User is the authenticated session identity hydrated from the backend
// profile endpoint.
type User struct {
	ID            string
	Name          string
	Email         string
	Role          string // USER | MODERATOR | ADMIN
	Avatar        string
	PhoneVerified bool
	CreatedAt     time.Time
}
