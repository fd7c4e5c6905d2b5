// Package auth gates the admin console behind a shared passphrase.
// It keeps casual visitors out of the console and is not a security boundary.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"atelier/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"

	// BcryptCost is used when hashing a passphrase for ADMIN_PASSPHRASE_HASH
	BcryptCost = 10

	DefaultGrantTTL = 4 * time.Hour
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrInvalidGrant      = errors.New("invalid grant")
	ErrGrantExpired      = errors.New("grant has expired")
)

// Gate unlocks the admin console and checks grants it handed out
type Gate interface {
	Unlock(ctx context.Context, passphrase string) (string, error)
	Verify(grant string) (*Claims, error)
}

// Claims represents the admin grant claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// PassphraseGate compares against a plaintext passphrase, or a bcrypt hash when one is configured
type PassphraseGate struct {
	passphrase string
	hash       string
	secret     []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewPassphraseGate builds a gate from the admin config. Without a grant secret a random
// one is generated, so grants do not survive a restart.
func NewPassphraseGate(cfg config.AdminConfig) *PassphraseGate {
	secret := cfg.GrantSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	ttl := cfg.GrantTTL
	if ttl <= 0 {
		ttl = DefaultGrantTTL
	}

	return &PassphraseGate{
		passphrase: cfg.Passphrase,
		hash:       cfg.PassphraseHash,
		secret:     []byte(secret),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Unlock returns a signed admin grant when passphrase matches
func (g *PassphraseGate) Unlock(ctx context.Context, passphrase string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !g.matches(passphrase) {
		return "", ErrInvalidPassphrase
	}

	grant, err := g.issue()
	if err != nil {
		return "", fmt.Errorf("failed to issue grant: %w", err)
	}
	return grant, nil
}

// Verify parses a grant and checks its signature, expiry and role
func (g *PassphraseGate) Verify(grant string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(grant, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrGrantExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidGrant
	}

	return claims, nil
}

func (g *PassphraseGate) matches(passphrase string) bool {
	if passphrase == "" {
		return false
	}
	if g.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(passphrase)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(passphrase), []byte(g.passphrase)) == 1
}

func (g *PassphraseGate) issue() (string, error) {
	now := g.now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// HashPassphrase produces a value for ADMIN_PASSPHRASE_HASH
func HashPassphrase(passphrase string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hashed), nil
}
