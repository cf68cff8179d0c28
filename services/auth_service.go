// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid credentials"

type tokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepository shared.UserRepository
	secret         []byte
	expiresIn      time.Duration
	now            func() time.Time
}

func NewAuthService(userRepository shared.UserRepository, cfg config.Config) *authService {
	return &authService{
		userRepository: userRepository,
		secret:         []byte(cfg.JWTSecret),
		expiresIn:      cfg.JWTExpiresIn,
		now:            time.Now,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "could not hash password")
	}
	return string(hash), nil
}

func (s *authService) IssueToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "could not sign token")
	}
	return signed, nil
}

func (s *authService) Login(email, password string) (string, models.User, error) {
	user, err := s.userRepository.FindByEmail(models.NormalizeEmail(email))
	if err != nil {
		if shared.IsNotFound(err) {
			return "", models.User{}, shared.NewUnauthorizedError(invalidCredentials, err)
		}
		return "", models.User{}, shared.NewStorageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, shared.NewUnauthorizedError(invalidCredentials, err)
	}
	// inactive users get the same answer as a wrong password
	if !user.IsActive() {
		return "", models.User{}, shared.NewUnauthorizedError(invalidCredentials, fmt.Errorf("user %s is inactive", user.ID))
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", models.User{}, shared.NewUnexpectedError(err)
	}
	slog.Info("user logged in", "userID", user.ID)
	return token, user, nil
}

func (s *authService) Register(req dtos.RegisterRequest) (string, models.User, error) {
	email := models.NormalizeEmail(req.Email)
	if _, err := s.userRepository.FindByEmail(email); err == nil {
		return "", models.User{}, shared.NewConflictError("email already registered", nil)
	} else if !shared.IsNotFound(err) {
		return "", models.User{}, shared.NewStorageError(err)
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return "", models.User{}, shared.NewUnexpectedError(err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepository.Create(nil, &user); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return "", models.User{}, shared.NewConflictError("email already registered", err)
		}
		return "", models.User{}, shared.NewStorageError(err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", models.User{}, shared.NewUnexpectedError(err)
	}
	return token, user, nil
}

func (s *authService) VerifyToken(tokenString string) (models.User, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return models.User{}, shared.NewUnauthorizedError("invalid token", err)
	}
	if claims.UserID == "" {
		return models.User{}, shared.NewUnauthorizedError("invalid token", fmt.Errorf("token without user id"))
	}

	user, err := s.userRepository.Read(claims.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			return models.User{}, shared.NewUnauthorizedError("invalid token", err)
		}
		return models.User{}, shared.NewStorageError(err)
	}
	if !user.IsActive() {
		return models.User{}, shared.NewUnauthorizedError("invalid token", fmt.Errorf("user %s is inactive", user.ID))
	}
	return user, nil
}

func (s *authService) ChangePassword(user models.User, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return shared.NewValidationError("current password is incorrect", err)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return shared.NewUnexpectedError(err)
	}
	user.PasswordHash = hash
	if err := s.userRepository.Save(nil, &user); err != nil {
		return shared.NewStorageError(err)
	}
	return nil
}
