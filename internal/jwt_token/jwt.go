package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
)

// Claims are the access-token claims rollcall relies on. The session layer
// that issues tokens puts the subject ID in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService validates HS256 access tokens. Issuing is only used by tests and
// local tooling; production tokens come from the session layer.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken signs a token for subjectID.
func (s *JWTService) GenerateAccessToken(subjectID id.SubjectID, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken verifies signature, expiry, issuer and audience.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// SubjectFromToken validates the token and parses its subject claim.
// It satisfies the auth middleware's SubjectValidator.
func (s *JWTService) SubjectFromToken(tokenString string) (id.SubjectID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return id.SubjectID{}, err
	}
	subjectID, err := id.ParseSubjectID(claims.Subject)
	if err != nil {
		return id.SubjectID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return subjectID, nil
}
