package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"servant_backend/platform/config"
	"servant_backend/platform/logger"
)

// ErrInvalidCredentials is returned for any login failure. Wrong email and
// wrong password are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the single site owner. There is no user table: the
// owner's email and bcrypt password hash come from configuration.
type Service struct {
	cfg config.AuthServiceConfig
	log *logger.Logger
}

// New creates the owner auth service.
func New(cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// SignIn verifies the owner's credentials and returns a signed access token.
func (s *Service) SignIn(_ context.Context, email, plainPassword string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.GetAdminEmail()) {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.GetAdminPasswordHash()), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return "", ErrInvalidCredentials
	}

	token, err := s.signJWT(s.cfg.GetAdminEmail(), s.cfg.GetAccessTokenTTL())
	if err != nil {
		return "", err
	}
	s.log.AuthEvent("login", email, true, "")
	return token, nil
}

func (s *Service) signJWT(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"type": "access",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
