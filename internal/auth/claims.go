package auth

import (
	"time"
)

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	IsRoot bool   `json:"is_root"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// DeviceInfo describes the client creating a session. Stored on the
// session for display in the active-sessions list.
type DeviceInfo struct {
	DeviceName    string `json:"deviceName"`    // Kamila's iPhone, Work Laptop
	ClientName    string `json:"clientName"`    // FitBot Mobile, FitBot Web
	ClientVersion string `json:"clientVersion"` // 1.0.0
}
