package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"raiseme/internal/domain"
)

// TokenType tags a credential as either a per-request access token or
// a longer-lived refresh token.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
)

// Identity is the authenticated principal carried by a validated token.
type Identity struct {
	UserID int64
	Email  string
	Admin  bool
	Type   TokenType
	JTI    string
}

// TokenPair is the result of issuing a session.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

// Authority issues, validates, and revokes bearer credentials. Every
// validation consults the revocation set: a revoked jti never
// authenticates again, expired or not.
type Authority struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration // 0 means refresh tokens never expire
	revoked    domain.RevokedTokenRepository
	now        func() time.Time
}

func NewAuthority(secret string, accessTTL, refreshTTL time.Duration, revoked domain.RevokedTokenRepository) *Authority {
	return &Authority{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    revoked,
		now:        time.Now,
	}
}

// Issue signs an access/refresh pair bound to the given user.
func (a *Authority) Issue(user *domain.User) (TokenPair, error) {
	access, err := a.sign(user, TokenTypeAccess, a.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := a.sign(user, TokenTypeRefresh, a.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (a *Authority) sign(user *domain.User, typ TokenType, ttl time.Duration) (string, error) {
	now := a.now()
	c := claims{
		Email: user.Email,
		Admin: user.IsAdmin,
		Type:  string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(user.ID, 10),
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

// Validate verifies signature, structure, expiry, and revocation, in
// that order, and returns the encoded identity.
func (a *Authority) Validate(ctx context.Context, token string) (Identity, error) {
	id, err := a.decode(token, false)
	if err != nil {
		return Identity{}, err
	}
	revoked, err := a.revoked.IsRevoked(ctx, id.JTI)
	if err != nil {
		return Identity{}, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return Identity{}, ErrTokenRevoked
	}
	return id, nil
}

// Revoke adds the token's jti to the revocation set. The signature
// must verify but expiry is not checked, so an expired token can still
// be revoked. Re-revoking is a no-op.
func (a *Authority) Revoke(ctx context.Context, token string) (TokenType, error) {
	id, err := a.decode(token, true)
	if err != nil {
		return "", err
	}
	if err := a.revoked.Revoke(ctx, id.JTI, a.now()); err != nil {
		return "", fmt.Errorf("persist revocation: %w", err)
	}
	return id.Type, nil
}

func (a *Authority) decode(token string, skipExpiry bool) (Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if skipExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	parser := jwt.NewParser(opts...)

	var c claims
	parsed, err := parser.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenMalformed
	}
	if !parsed.Valid || c.ID == "" {
		return Identity{}, ErrTokenMalformed
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrTokenMalformed
	}
	typ := TokenType(c.Type)
	if typ != TokenTypeAccess && typ != TokenTypeRefresh {
		return Identity{}, ErrTokenMalformed
	}
	return Identity{
		UserID: userID,
		Email:  c.Email,
		Admin:  c.Admin,
		Type:   typ,
		JTI:    c.ID,
	}, nil
}
