package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// Identity is the profile carried by an identity provider token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// VerifyToken fetches the Authorization header, validates the HS256 JWT
// and, when issuer is set, its iss claim.
func VerifyToken(r *http.Request, secret, issuer string) (jwt.MapClaims, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return nil, ErrMissingAuthHeader
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// SubjectFromClaims extracts the "sub" claim safely as a string.
func SubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"]
	if !ok {
		return "", errors.New("missing sub claim")
	}

	switch v := sub.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", errors.New("empty sub claim")
		}
		return v, nil
	case float64:
		// JWT numbers get decoded as float64
		return fmt.Sprintf("%d", int64(v)), nil
	default:
		return "", errors.New("invalid sub claim type")
	}
}

// IdentityFromClaims reads the subject and profile. Email falls back to the
// first entry of email_addresses; name falls back to first_name last_name.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, err := SubjectFromClaims(claims)
	if err != nil {
		return Identity{}, err
	}

	identity := Identity{Subject: sub, Email: stringClaim(claims, "email"), Name: stringClaim(claims, "name")}

	if identity.Email == "" {
		if addresses, ok := claims["email_addresses"].([]interface{}); ok && len(addresses) > 0 {
			switch first := addresses[0].(type) {
			case string:
				identity.Email = strings.TrimSpace(first)
			case map[string]interface{}:
				if email, ok := first["email_address"].(string); ok {
					identity.Email = strings.TrimSpace(email)
				}
			}
		}
	}

	if identity.Name == "" {
		identity.Name = strings.TrimSpace(stringClaim(claims, "first_name") + " " + stringClaim(claims, "last_name"))
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
