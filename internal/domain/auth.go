package domain

import "time"

// SessionNamespace separates staff-like and customer-like session slots.
// Both may coexist under one session key.
type SessionNamespace string

const (
	SessionNamespaceStaff SessionNamespace = "staff"
	SessionNamespaceDiner SessionNamespace = "diner"
)

// TokenPair is the credential pair handed out at login: a short-lived access
// token presented on every request and a long-lived refresh token exchanged
// for fresh access tokens. Pairs are not persisted and not revocable.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Credentials carries whatever the request presented: a bearer token, a
// session key, both or neither.
type Credentials struct {
	Bearer     string
	SessionKey string
}
