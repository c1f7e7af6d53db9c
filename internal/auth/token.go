package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims follows the Keycloak access token layout.
type Claims struct {
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
}

// NewVerifier builds an HS256 verifier from secret, or an RS256 one when
// publicKeyPEM is not empty.
func NewVerifier(secret, publicKeyPEM, issuer string) (*Verifier, error) {
	v := &Verifier{secret: []byte(secret), issuer: issuer}

	if publicKeyPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parsing public key: %w", err)
		}

		v.publicKey = key
	}

	if v.publicKey == nil && secret == "" {
		return nil, errors.New("either a secret or a public key is required")
	}

	return v, nil
}

func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyFunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	p := &Principal{Username: claims.PreferredUsername}
	if p.Username == "" {
		p.Username = claims.Subject
	}

	for _, r := range claims.RealmAccess.Roles {
		switch Role(r) {
		case RoleAdmin, RoleEmployee:
			p.Roles = append(p.Roles, Role(r))
		}
	}

	return p, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	if v.publicKey != nil {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}

		return v.publicKey, nil
	}

	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}

	return v.secret, nil
}
