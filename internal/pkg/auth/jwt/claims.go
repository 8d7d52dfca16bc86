package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims defines the JSON Web Token payload issued at login.
// Besides the registered claims (iat, exp, iss) it carries only the account id;
// the token is the caller's whole identity and nothing else is trusted.
type Claims struct {
	// UserID is the id of the account the token was issued to.
	UserID string `json:"userId"`

	jwt.RegisteredClaims
}
