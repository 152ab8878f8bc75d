package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authentication errors
var (
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims represents the JWT claims the API cares about
type Claims struct {
	UserID string   `json:"sub"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTConfig holds JWT validation configuration
type JWTConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
}

// JWTValidator validates JWT tokens
type JWTValidator struct {
	config    JWTConfig
	secretKey []byte
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SigningMethod != "HS256" {
		return nil, errors.New("unsupported signing method: " + config.SigningMethod)
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	return &JWTValidator{
		config:    config,
		secretKey: []byte(config.SecretKey),
	}, nil
}

// ValidateToken parses and validates a JWT token string
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.config.SigningMethod}),
	}
	if v.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	}, options...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			// Expired tokens still carry usable claims for refresh flows
			if token != nil {
				if claims, ok := token.Claims.(*Claims); ok {
					if claims.UserID == "" {
						claims.UserID = claims.Subject
					}
					if claims.UserID != "" {
						return claims, ErrExpiredToken
					}
				}
			}
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// JWTGeneratorConfig holds JWT generation configuration
type JWTGeneratorConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
	ExpiryTime    time.Duration
}

// JWTGenerator creates signed JWT tokens
type JWTGenerator struct {
	config    JWTGeneratorConfig
	secretKey []byte
}

// NewJWTGenerator creates a new JWT generator
func NewJWTGenerator(config JWTGeneratorConfig) (*JWTGenerator, error) {
	if config.SigningMethod != "HS256" {
		return nil, errors.New("unsupported signing method: " + config.SigningMethod)
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if config.ExpiryTime <= 0 {
		config.ExpiryTime = 24 * time.Hour
	}

	return &JWTGenerator{
		config:    config,
		secretKey: []byte(config.SecretKey),
	}, nil
}

// GenerateToken creates a signed token for the user
func (g *JWTGenerator) GenerateToken(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    g.config.Issuer,
			Audience:  g.config.Audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.config.ExpiryTime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secretKey)
}

// UserContext holds the authenticated user's identity for the request
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type userContextKey struct{}

// SetUserInContext stores the user context in the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext retrieves the user context from the request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || user == nil {
		return nil, ErrMissingToken
	}
	return user, nil
}
