package service

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// Issuer is part of the wire contract: interoperating clients must present
// tokens carrying exactly this issuer claim.
const Issuer = "freelance-marketplace-api"

const defaultTokenTTL = 7200 * time.Second

// TokenService issues and validates RS256-signed identity tokens. Key
// material is parsed once at construction; a malformed key is a construction
// error, never a per-request one.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenService parses the PEM-encoded RSA key pair. A non-positive ttl
// falls back to the standard 7200-second validity window.
func NewTokenService(privateKeyPEM, publicKeyPEM []byte, ttl time.Duration) (*TokenService, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Issue signs a token whose subject is the given user id, valid from now
// until now+ttl.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, issuer and expiry and returns the subject
// claim. Every failure collapses to domain.ErrInvalidToken so the caller
// learns nothing about why the token was rejected.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
