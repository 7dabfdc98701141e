package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	sharedauth "github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/config"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

const (
	defaultLeeway = 30 * time.Second
	tokenKind     = "session token"
)

var (
	ErrMissingSubject = errors.New("token missing sub")
	ErrNotConfigured  = errors.New("token verification is not configured")
)

// Claims are the session claims issued by the identity provider.
type Claims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates bearer session tokens. It checks HS256 tokens
// against a shared secret, or asymmetric tokens against a JWKS endpoint.
type TokenVerifier struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

func NewTokenVerifier(cfg config.JWTConfig) (*TokenVerifier, error) {
	opts := []jwt.ParserOption{jwt.WithLeeway(defaultLeeway), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.NewDefault([]string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("failed to init JWKS keyfunc: %w", err)
		}
		opts = append(opts, jwt.WithValidMethods([]string{
			jwt.SigningMethodRS256.Name,
			jwt.SigningMethodES256.Name,
		}))
		return &TokenVerifier{
			parser:  jwt.NewParser(opts...),
			keyfunc: jwks.Keyfunc,
		}, nil
	}

	if cfg.Secret == "" {
		return nil, ErrNotConfigured
	}
	secret := []byte(cfg.Secret)
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	return &TokenVerifier{
		parser: jwt.NewParser(opts...),
		keyfunc: func(*jwt.Token) (any, error) {
			return secret, nil
		},
	}, nil
}

// Verify parses tokenString and returns the caller identity.
func (v *TokenVerifier) Verify(tokenString string) (sharedauth.Context, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyfunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return sharedauth.Context{}, apperrors.NewTokenExpiredError(tokenKind)
		}
		return sharedauth.Context{}, apperrors.NewTokenInvalidError(tokenKind, err.Error())
	}
	if !token.Valid {
		return sharedauth.Context{}, apperrors.NewTokenInvalidError(tokenKind)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return sharedauth.Context{}, fmt.Errorf("%w: %w", ErrMissingSubject, apperrors.NewTokenInvalidError(tokenKind, ErrMissingSubject.Error()))
	}

	return sharedauth.Context{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   displayName(claims.UserMetadata),
	}, nil
}

func displayName(meta map[string]any) string {
	for _, key := range []string{"full_name", "name"} {
		if s, ok := meta[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
