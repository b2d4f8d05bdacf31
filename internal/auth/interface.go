package auth

import "github.com/Hosi121/Bansho-sub000/internal/domain/models"

// JWTVerifier defines the interface for JWT token verification.
// The middleware depends on this rather than on the signing details.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.Claims, error)
}

// TokenIssuer mints session tokens for authenticated users
type TokenIssuer interface {
	IssueToken(user *models.User) (string, error)
}
