package invite

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuerName = "duet"

// DefaultTTL is how long an invite link stays valid.
const DefaultTTL = 72 * time.Hour

// ErrInvalid is returned for expired, malformed, or tampered invite tokens.
var ErrInvalid = errors.New("invalid invite token")

// Claims carries the couple and inviter identity inside an invite token.
type Claims struct {
	CoupleID  int64 `json:"couple_id"`
	InviterID int64 `json:"inviter_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies couple invite tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A zero ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed invite token binding the partner-to-be to a couple.
func (i *Issuer) Issue(coupleID, inviterID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		CoupleID:  coupleID,
		InviterID: inviterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign invite token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an invite token.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.CoupleID == 0 {
		return nil, ErrInvalid
	}
	return &claims, nil
}
