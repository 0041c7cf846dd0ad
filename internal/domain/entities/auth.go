package entities

import "time"

// AuthSession is the access token obtained from the vendor's identity
// provider. Gateway and client each hold their own copy, one per
// process; it is never persisted.
type AuthSession struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Scope       string    `json:"scope"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the session holds an unexpired token
func (s AuthSession) Valid() bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}
