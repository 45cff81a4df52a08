package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

type userClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTStrategy issues HS256 tokens with the user id in the "id" claim.
type JWTStrategy struct {
	secret []byte
	opts   Options
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), opts: opts.normalized()}
}

// IssueToken signs a token for the user.
func (s *JWTStrategy) IssueToken(userID int64) (string, error) {
	now := s.opts.Now()
	claims := userClaims{
		ID: strconv.FormatInt(userID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature and expiry and returns the user id.
func (s *JWTStrategy) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	var claims userClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
