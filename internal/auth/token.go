package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// ErrInvalidToken is returned for malformed, expired, wrongly signed or
// wrongly typed tokens. Callers map it to the INVALID_CREDENTIAL taxonomy.
var ErrInvalidToken = errors.New("invalid token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenManager mints and validates the access/refresh credential pair.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager. Zero or negative TTLs fall back to
// 15 minutes for access and 7 days for refresh.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload for both token types.
type Claims struct {
	UserID    string      `json:"uid"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// Issue mints a fresh credential pair bound to the user. Multiple
// outstanding pairs per user are allowed; nothing is recorded server-side.
func (tm *TokenManager) Issue(userID string, role domain.Role) (domain.TokenPair, error) {
	now := time.Now()

	access, accessExp, err := tm.sign(userID, role, tokenTypeAccess, now, tm.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshExp, err := tm.sign(userID, role, tokenTypeRefresh, now, tm.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ValidateAccess returns the user id embedded in a valid access token.
func (tm *TokenManager) ValidateAccess(tokenStr string) (string, error) {
	claims, err := tm.parse(tokenStr, tokenTypeAccess)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// RefreshAccess exchanges a valid refresh token for a new access token. The
// refresh token itself is neither rotated nor invalidated; it stays usable
// until it expires.
func (tm *TokenManager) RefreshAccess(refreshToken string) (string, time.Time, error) {
	claims, err := tm.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, err
	}
	return tm.sign(claims.UserID, claims.Role, tokenTypeAccess, time.Now(), tm.accessTTL)
}

func (tm *TokenManager) sign(userID string, role domain.Role, typ string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (tm *TokenManager) parse(tokenStr, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
