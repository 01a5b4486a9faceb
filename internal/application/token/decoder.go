package token

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"eventdesk/internal/domain/user"
)

// DefaultRole is assumed when the token carries no role claim.
const DefaultRole = user.RoleParticipant

// ErrMalformedToken indicates the token could not be parsed at all.
var ErrMalformedToken = errors.New("malformed access token")

// Decode extracts the profile from an access token WITHOUT verifying its
// signature. The backend is the verifier; the console only displays what the
// token claims and lets the backend reject calls made with a bad token.
// PRE: tok is non-empty
// POST: Returns a profile whose Role is never empty
func Decode(tok string) (user.Profile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return user.Profile{}, ErrMalformedToken
	}

	p := user.Profile{
		ID:        stringClaim(claims, "sub", "user_id"),
		Email:     stringClaim(claims, "email"),
		Role:      stringClaim(claims, "role"),
		FirstName: stringClaim(claims, "first_name", "given_name"),
		LastName:  stringClaim(claims, "last_name", "family_name"),
	}
	if p.Role == "" {
		p.Role = DefaultRole
	}
	return p, nil
}

// stringClaim returns the first present claim among keys, rendered as a
// string. Numeric subjects come out of the JSON decoder as float64.
func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return trimFloat(v)
		}
	}
	return ""
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
