package jwt_generator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"course-api/pkg/config"
)

type JwtGenerator interface {
	GenerateAccessToken(email, userId string) (string, error)
	GenerateRefreshToken(email, userId string) (string, error)
	VerifyAccessToken(rawJwtToken string) (*Claims, error)
	VerifyRefreshToken(rawJwtToken string) (*Claims, error)
	AccessTokenExpiresInSeconds() int64
	RefreshTokenExpiresInSeconds() int64
}

type jwtGenerator struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTtl  time.Duration
	refreshTokenTtl time.Duration
}

// NewJwtGenerator builds a codec signing access and refresh tokens with
// independent secrets, so a leaked access token can never be replayed as
// a refresh token and vice versa.
func NewJwtGenerator(jwtConfig config.JwtConfig) (JwtGenerator, error) {
	if len(jwtConfig.AccessSecret) == 0 || len(jwtConfig.RefreshSecret) == 0 {
		return nil, errors.New("jwt secrets must not be empty")
	}

	if string(jwtConfig.AccessSecret) == string(jwtConfig.RefreshSecret) {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	return &jwtGenerator{
		accessSecret:    jwtConfig.AccessSecret,
		refreshSecret:   jwtConfig.RefreshSecret,
		accessTokenTtl:  ParseExpiresIn(jwtConfig.ExpiresIn),
		refreshTokenTtl: ParseExpiresIn(jwtConfig.RefreshExpiresIn),
	}, nil
}

func (jwtGenerator *jwtGenerator) GenerateAccessToken(email, userId string) (string, error) {
	return jwtGenerator.generateToken(email, userId, jwtGenerator.accessSecret, jwtGenerator.accessTokenTtl)
}

func (jwtGenerator *jwtGenerator) GenerateRefreshToken(email, userId string) (string, error) {
	return jwtGenerator.generateToken(email, userId, jwtGenerator.refreshSecret, jwtGenerator.refreshTokenTtl)
}

func (jwtGenerator *jwtGenerator) VerifyAccessToken(rawJwtToken string) (*Claims, error) {
	return verifyToken(rawJwtToken, jwtGenerator.accessSecret)
}

func (jwtGenerator *jwtGenerator) VerifyRefreshToken(rawJwtToken string) (*Claims, error) {
	return verifyToken(rawJwtToken, jwtGenerator.refreshSecret)
}

func (jwtGenerator *jwtGenerator) AccessTokenExpiresInSeconds() int64 {
	return int64(jwtGenerator.accessTokenTtl / time.Second)
}

func (jwtGenerator *jwtGenerator) RefreshTokenExpiresInSeconds() int64 {
	return int64(jwtGenerator.refreshTokenTtl / time.Second)
}

func (jwtGenerator *jwtGenerator) generateToken(
	email, userId string,
	secret []byte,
	ttl time.Duration,
) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userId,
			Issuer:    IssuerDefault,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// verifyToken is binary: any structural, signature or expiry failure is
// reported as one verification error.
func verifyToken(rawJwtToken string, secret []byte) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(rawJwtToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("jwt token is not valid signature")
		}

		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	isValidIssuer := claims.VerifyIssuer(IssuerDefault, true)
	if !isValidIssuer {
		return nil, errors.New("ambiguous jwt token issuer")
	}

	return &claims, nil
}
