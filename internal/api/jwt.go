package api

import (
	crand "crypto/rand"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims carries the player's identity. Subject holds the email.
type sessionClaims struct {
	Name string `json:"name"`
	UUID string `json:"uid"`
	jwt.RegisteredClaims
}

var (
	devSecret     []byte
	devSecretOnce sync.Once
	devSecretErr  error
)

func getSessionSecret() ([]byte, error) {
	if secret := os.Getenv(constants.EnvSessionSecret); secret != "" {
		return []byte(secret), nil
	}
	// in-memory secret for development; sessions do not survive restarts
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			devSecretErr = errors.New("failed to generate dev session secret")
		}
	})
	return devSecret, devSecretErr
}

func createSessionToken(email, name, uuid string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		UUID: uuid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &claims, nil
}
