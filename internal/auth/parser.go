package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"profile_id"`
}

// Parser validates HS256 access tokens carrying a profile_id claim.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	profileID, err := uuid.Parse(claims.ProfileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad profile_id claim", ErrInvalidToken)
	}
	return profileID, nil
}

// Sign issues a token for the given profile. Used by the auth service that
// fronts this one; kept here so both sides agree on the claim layout.
func (p *Parser) Sign(profileID uuid.UUID, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ProfileID: profileID.String(),
	})
	return token.SignedString(p.secret)
}
