package helper

import (
	"errors"
	"fmt"
	"time"

	"storefront/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateAccessToken(secret []byte, tokenClaim model.TokenClaim, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
}

// ClaimFromToken reads the account claims of a parsed token.
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("unexpected claims type")
	}
	accountId, ok := claims["accountId"].(float64)
	if !ok {
		return model.TokenClaim{}, errors.New("token without accountId")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{
		AccountId: uint(accountId),
		Username:  username,
		Role:      role,
	}, nil
}
