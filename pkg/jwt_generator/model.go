package jwt_generator

import "github.com/golang-jwt/jwt/v4"

const IssuerDefault = "course-api"

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
