package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

// JWT claim keys (exported for use by other packages)
const (
	ClaimSub      = "sub"
	ClaimIss      = "iss"
	ClaimAud      = "aud"
	ClaimProvider = "provider"
)

// Verifier parses and validates bearer tokens into a Principal.
type Verifier struct {
	secretKey []byte
	algorithm string
	issuer    string
	audience  string
	clockSkew time.Duration
}

func NewVerifier(secretKey, algorithm, issuer, audience string, clockSkew time.Duration) (*Verifier, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New(constants.ErrSecretKeyRequired)
	}
	if strings.TrimSpace(algorithm) == "" {
		return nil, errors.New(constants.ErrAlgorithmRequired)
	}
	return &Verifier{
		secretKey: []byte(secretKey),
		algorithm: algorithm,
		issuer:    issuer,
		audience:  audience,
		clockSkew: clockSkew,
	}, nil
}

// Verify parses and validates the token. Returns the requester Principal if valid.
func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, constants.BearerPrefix)

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.algorithm}),
		jwt.WithLeeway(v.clockSkew),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf(constants.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, errors.New(constants.ErrInvalidTokenClaims)
	}

	// Required claims
	sub, ok := claims[ClaimSub].(string)
	if !ok || strings.TrimSpace(sub) == "" {
		return nil, errors.New(constants.ErrMissingClaimSub)
	}

	// exp/nbf/iat checked by parser; issuer/audience optional
	if v.issuer != "" && !matchesIssuer(claims, v.issuer) {
		return nil, fmt.Errorf(constants.ErrInvalidIssuer, claims[ClaimIss])
	}
	if v.audience != "" && !matchesAudience(claims, v.audience) {
		return nil, fmt.Errorf(constants.ErrInvalidAudience, claims[ClaimAud])
	}

	provider, _ := claims[ClaimProvider].(string)

	return &Principal{
		Name:     sub,
		Provider: provider,
		Claims:   map[string]any(claims),
	}, nil
}

func matchesIssuer(claims jwt.MapClaims, issuer string) bool {
	iss, ok := claims[ClaimIss].(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(iss) == issuer
}

func matchesAudience(claims jwt.MapClaims, audience string) bool {
	if audience == "" {
		return true
	}
	switch aud := claims[ClaimAud].(type) {
	case string:
		return aud == audience
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok && s == audience {
				return true
			}
		}
	case []string:
		for _, s := range aud {
			if s == audience {
				return true
			}
		}
	}
	return false
}
