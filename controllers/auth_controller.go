package controllers

import (
	"net/http"

	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type AuthController struct {
	authService    shared.AuthService
	userRepository shared.UserRepository
}

func NewAuthController(authService shared.AuthService, userRepository shared.UserRepository) *AuthController {
	return &AuthController{
		authService:    authService,
		userRepository: userRepository,
	}
}

func (c *AuthController) Login(ctx shared.Context) error {
	var req dtos.LoginRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	token, user, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}
	return shared.OK(ctx, dtos.AuthResponse{Token: token, User: transformer.UserModelToDTO(user)})
}

func (c *AuthController) Register(ctx shared.Context) error {
	var req dtos.RegisterRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	token, user, err := c.authService.Register(req)
	if err != nil {
		return err
	}
	return shared.Success(ctx, http.StatusCreated, dtos.AuthResponse{Token: token, User: transformer.UserModelToDTO(user)})
}

func (c *AuthController) Me(ctx shared.Context) error {
	session := shared.GetSession(ctx)
	user, err := c.userRepository.ReadWithSubscriptions(session.ID)
	if err != nil {
		return shared.StorageErrorOr(err, "user not found")
	}
	return shared.OK(ctx, transformer.UserModelToDTO(user))
}

func (c *AuthController) ChangePassword(ctx shared.Context) error {
	var req dtos.ChangePasswordRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.authService.ChangePassword(shared.GetSession(ctx), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return shared.OK(ctx, dtos.MessageResponse{Message: "password changed"})
}
