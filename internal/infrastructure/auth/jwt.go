package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/infrastructure/config"
)

// Roles carried in token claims. Tokens are issued by the external
// identity service; this service only verifies them.
const (
	RoleAdmin    = "admin"
	RoleRetailer = "retailer"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingSubject   = errors.New("missing subject in claims")
)

// Claims are the custom JWT claims this platform understands. Retailer
// tokens carry the retailer's aggregate ID; admin tokens do not.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	RetailerID string `json:"retailer_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// JWTService verifies bearer tokens against the shared signing secret.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a JWT service from configuration.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// ValidateToken parses and verifies a token string, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingSubject
	}
	if claims.Role != RoleAdmin && claims.Role != RoleRetailer {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// GenerateToken signs a token for the given identity. Production tokens
// come from the identity service; this is used by tests and dev tooling.
func (s *JWTService) GenerateToken(userID, role, retailerID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:     userID,
		Role:       role,
		RetailerID: retailerID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IsAdmin reports whether the claims belong to a back-office user.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// RetailerUUID parses the retailer ID from the claims. Returns
// uuid.Nil with no error for admin tokens.
func (c *Claims) RetailerUUID() (uuid.UUID, error) {
	if c.RetailerID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(c.RetailerID)
}
