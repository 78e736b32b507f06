package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/viant/tripclient/auth/credential"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// createJWT creates a signed token for subject with the given type and expiry
func (s *Service) createJWT(subject, tokenType string, expiry time.Duration, generation int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.Issuer,
		"sub": subject,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
		"typ": tokenType,
		"gen": generation,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Service) issuePair(subject string) (*credential.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	access, err := s.createJWT(subject, accessTokenType, s.AccessTTL, s.generation)
	if err != nil {
		return nil, err
	}
	refresh, err := s.createJWT(subject, refreshTokenType, 24*time.Hour, s.generation)
	if err != nil {
		return nil, err
	}
	s.refreshTokens[refresh] = subject
	return &credential.Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// verifyAccess returns token subject if the access token is valid and current
func (s *Service) verifyAccess(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims["typ"] != accessTokenType {
		return "", errors.New("not an access token")
	}
	generation, _ := claims["gen"].(float64)
	s.mu.RLock()
	current := s.generation
	s.mu.RUnlock()
	if int64(generation) < current {
		return "", errors.New("token expired")
	}
	subject, _ := claims.GetSubject()
	return subject, nil
}

// rotate consumes a refresh token and issues a new pair
func (s *Service) rotate(refreshToken string) (*credential.Pair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims["typ"] != refreshTokenType {
		return nil, errors.New("not a refresh token")
	}
	s.mu.Lock()
	subject, ok := s.refreshTokens[refreshToken]
	delete(s.refreshTokens, refreshToken)
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("refresh token revoked")
	}
	return s.issuePair(subject)
}

func (s *Service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.Issuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
