package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	httpdto "github.com/vibast-solutions/ms-go-jobtrack/app/dto/http"
	"github.com/vibast-solutions/ms-go-jobtrack/app/middleware"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/app/validate"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Login(ctx echo.Context) error {
	req := &httpdto.LoginRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "invalid credentials"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", result.User.Email).Info("Login successful")
	return ctx.JSON(http.StatusOK, loginResponse("login successful", result.User.Email, result.AccessToken, result.RefreshToken))
}

func (c *AuthController) Register(ctx echo.Context) error {
	req := &httpdto.RegisterRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.authService.Register(ctx.Request().Context(), req.Email, req.Password, req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerificationCode) {
			logrus.WithField("email", req.Email).Warn("Register failed: invalid verification code")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid or expired token"})
		}
		if errors.Is(err, service.ErrUserExists) {
			logrus.WithField("email", req.Email).Warn("Register failed: user already exists")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "user already exists"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id": result.User.ID,
		"email":   result.User.Email,
	}).Info("User registered")
	return ctx.JSON(http.StatusOK, loginResponse("registration successful", result.User.Email, result.AccessToken, result.RefreshToken))
}

func (c *AuthController) SendVerificationEmail(ctx echo.Context) error {
	req := &httpdto.SendVerificationEmailRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind send verification request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.Debug("Send verification validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	if err := c.authService.SendVerificationEmail(ctx.Request().Context(), req.Email, req.TokenType); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Error("Send verification email failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "verification email sent"})
}

func (c *AuthController) LoginWithToken(ctx echo.Context) error {
	req := &httpdto.LoginWithTokenRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login with token request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.WithField("email", req.Email).Debug("Login with token validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.authService.LoginWithCode(ctx.Request().Context(), req.Email, req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerificationCode) {
			logrus.WithField("email", req.Email).Warn("Login with token failed: invalid code")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid or expired token"})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Login with token failed: user not found")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login with token failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", result.User.Email).Info("Login with token successful")
	return ctx.JSON(http.StatusOK, loginResponse("login successful", result.User.Email, result.AccessToken, result.RefreshToken))
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	req := &httpdto.RefreshTokenRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind refresh token request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.Debug("Refresh token validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	access, err := c.authService.RefreshAccess(req.Refresh)
	if err != nil {
		logrus.Warn("Refresh token failed: invalid or expired token")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "invalid or expired refresh token"})
	}

	return ctx.JSON(http.StatusOK, httpdto.RefreshResponse{
		Access:  access,
		Message: "token refreshed",
	})
}

func (c *AuthController) VerifyToken(ctx echo.Context) error {
	req := &httpdto.VerifyTokenRequest{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind verify token request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		logrus.Debug("Verify token validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	user, err := c.authService.VerifyAccess(ctx.Request().Context(), req.Access)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.Warn("Verify token failed: user not found")
			return ctx.JSON(http.StatusNotFound, httpdto.VerifyResponse{Valid: false, Error: "user not found"})
		}
		logrus.Debug("Verify token failed: invalid token")
		return ctx.JSON(http.StatusUnauthorized, httpdto.VerifyResponse{Valid: false, Error: "invalid or expired token"})
	}

	return ctx.JSON(http.StatusOK, httpdto.VerifyResponse{
		Valid:   true,
		User:    &httpdto.UserInfo{Email: user.Email},
		Message: "token is valid",
	})
}

func (c *AuthController) SelfInfo(ctx echo.Context) error {
	identity := middleware.IdentityFrom(ctx)

	user, err := c.authService.SelfInfo(ctx.Request().Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "invalid or expired token"})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).Error("Self info failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, httpdto.SelfInfoResponse{Email: user.Email})
}

func loginResponse(message, email, access, refresh string) httpdto.LoginResponse {
	return httpdto.LoginResponse{
		Message: message,
		User:    httpdto.UserInfo{Email: email},
		Tokens:  httpdto.Tokens{Access: access, Refresh: refresh},
	}
}
