package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingActorID   = errors.New("missing actor_id in claims")
)

// Claims represents the custom JWT claims carried by the upstream identity
// provider. ActorKind distinguishes back-office users from sales reps; the
// engine derives its access scope from these fields on every request.
type Claims struct {
	jwt.RegisteredClaims
	ActorID    string `json:"actor_id"`
	ActorKind  string `json:"actor_kind"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	SalesRepID string `json:"sales_rep_id,omitempty"`
}

// JWTService validates bearer tokens issued by the identity provider. Token
// issuance is not handled here; GenerateAccessToken exists for tests and
// local tooling.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	ActorID    uuid.UUID
	ActorKind  string
	Role       string
	Name       string
	SalesRepID *uuid.UUID
}

// GenerateAccessToken generates a signed access token
func (s *JWTService) GenerateAccessToken(input GenerateTokenInput) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.ActorID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ActorID:   input.ActorID.String(),
		ActorKind: input.ActorKind,
		Role:      input.Role,
		Name:      input.Name,
	}
	if input.SalesRepID != nil {
		claims.SalesRepID = input.SalesRepID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken validates a bearer token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.ActorID == "" {
		return nil, ErrMissingActorID
	}

	return claims, nil
}

// ToActor converts validated claims into the domain actor identity
func (c *Claims) ToActor() (adjustment.Actor, error) {
	actorID, err := uuid.Parse(c.ActorID)
	if err != nil {
		return adjustment.Actor{}, ErrInvalidClaims
	}

	actor := adjustment.Actor{
		Kind: c.ActorKind,
		Role: c.Role,
		ID:   actorID,
		Name: c.Name,
	}

	if c.SalesRepID != "" {
		repID, err := uuid.Parse(c.SalesRepID)
		if err != nil {
			return adjustment.Actor{}, ErrInvalidClaims
		}
		actor.SalesRepID = &repID
	}

	return actor, nil
}
