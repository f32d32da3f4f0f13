package session

import "time"

// Session binds one authenticated login to its encrypted Jira credential.
// A session is usable only while Active is true and ExpiresAt is in the future.
type Session struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	JiraDomain        string    `json:"jira_domain"`
	EncryptedAPIToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	Active            bool      `json:"active"`
}

// AccountKey identifies the login identity a session belongs to.
type AccountKey struct {
	Email      string
	JiraDomain string
}
