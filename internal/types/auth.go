package types

import "time"

// TokenInfo is the identity carried by a verified bearer token.
type TokenInfo struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}
