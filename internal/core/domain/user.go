package domain

import "time"

// User is a registered account. Wallets, notifications and the security
// profile are all keyed by Username.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id encoded hash
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the explicit per-login context passed into core operations.
// It is created on login and discarded on logout; core components never
// consult ambient "current user" state.
type Session struct {
	Username string
	LoginAt  time.Time
}
