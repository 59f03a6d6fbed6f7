package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload: the user ID plus iat/exp.
// Access and refresh tokens share this shape and differ only in lifetime.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-SHA256 signed bearer tokens.
// Tokens are stateless: validity is a function of the signature and the
// embedded expiry only, so a token cannot be revoked before it expires.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token for userID.
func (s *TokenService) IssueAccessToken(userID int64) (string, error) {
	return s.issue(userID, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token for userID.
func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	return s.issue(userID, s.refreshTTL)
}

func (s *TokenService) issue(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded user ID. Signature mismatch, malformed structure and expiry all
// yield ok=false with no distinction, so callers cannot leak which check failed.
func (s *TokenService) Verify(tokenString string) (int64, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}
