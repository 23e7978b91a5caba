package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"account-portal/internal/middleware"
	"account-portal/internal/models"
	"account-portal/internal/repository"
	"account-portal/internal/service"
	"account-portal/internal/session"
)

const (
	msgAccountCreated  = "Account created successfully! Please log in."
	msgEmailExists     = "Email already exists! Try logging in."
	msgCreateFailed    = "Error creating account. Please try again."
	msgIncorrectPass   = "Incorrect password."
	msgNoAccount       = "No account found with that email."
	msgTooManyAttempts = "Too many login attempts. Please try again later."
	msgInvalidForm     = "Invalid form submission."
	msgSomethingWrong  = "Something went wrong. Please try again."
)

type AuthController struct {
	authService   service.AuthService
	throttle      *service.LoginThrottle
	loginView     string
	dashboardView string
}

func NewAuthController(authService service.AuthService, throttle *service.LoginThrottle, loginView, dashboardView string) *AuthController {
	return &AuthController{
		authService:   authService,
		throttle:      throttle,
		loginView:     loginView,
		dashboardView: dashboardView,
	}
}

// CreateAccount handles /create_account. Only POST does anything.
func (ac *AuthController) CreateAccount(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Status(http.StatusNoContent)
		return
	}
	log := middleware.Logger(c)

	var req models.CreateAccountRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		log.Info("unparseable account form", zap.Error(err))
		notify(c, http.StatusBadRequest, models.NotifyAndGoBack(msgInvalidForm))
		return
	}
	req.Trim()

	user, err := ac.authService.CreateAccount(c.Request.Context(), &req)
	switch {
	case err == nil:
		log.Info("account created", zap.Int64("user_id", user.ID))
		notify(c, http.StatusCreated, models.NotifyAndRedirect(msgAccountCreated, ac.loginView))
	case errors.Is(err, service.ErrEmailExists):
		log.Info("account creation rejected: email exists")
		notify(c, http.StatusConflict, models.NotifyAndRedirect(msgEmailExists, ac.loginView))
	default:
		log.Error("account creation failed", zap.Error(err))
		notify(c, http.StatusInternalServerError, models.NotifyAndGoBack(msgCreateFailed))
	}
}

// Login handles /login. On success the session is started and the client
// is sent to the dashboard with no body.
func (ac *AuthController) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Status(http.StatusNoContent)
		return
	}
	log := middleware.Logger(c)
	ctx := c.Request.Context()
	client := c.ClientIP()

	if err := ac.throttle.Check(ctx, client); err != nil {
		if errors.Is(err, service.ErrTooManyAttempts) {
			log.Warn("login throttled", zap.String("ip", client))
			notify(c, http.StatusTooManyRequests, models.NotifyAndGoBack(msgTooManyAttempts))
			return
		}
		// A broken throttle backend must not lock everyone out.
		log.Error("login throttle unavailable", zap.Error(err))
	}

	var req models.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		log.Info("unparseable login form", zap.Error(err))
		notify(c, http.StatusBadRequest, models.NotifyAndGoBack(msgInvalidForm))
		return
	}
	req.Trim()

	user, err := ac.authService.Login(ctx, &req)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrIncorrectPassword):
		ac.recordFailure(c, log)
		notify(c, http.StatusUnauthorized, models.NotifyAndGoBack(msgIncorrectPass))
		return
	case errors.Is(err, service.ErrAccountNotFound):
		ac.recordFailure(c, log)
		notify(c, http.StatusNotFound, models.NotifyAndGoBack(msgNoAccount))
		return
	case errors.Is(err, repository.ErrDuplicateEmail):
		log.Error("users table holds duplicate email", zap.Error(err))
		notify(c, http.StatusInternalServerError, models.NotifyAndGoBack(msgSomethingWrong))
		return
	default:
		log.Error("login failed", zap.Error(err))
		notify(c, http.StatusInternalServerError, models.NotifyAndGoBack(msgSomethingWrong))
		return
	}

	if err := session.Start(c, user); err != nil {
		log.Error("session start failed", zap.Error(err), zap.Int64("user_id", user.ID))
		notify(c, http.StatusInternalServerError, models.NotifyAndGoBack(msgSomethingWrong))
		return
	}
	if err := ac.throttle.Reset(ctx, client); err != nil {
		log.Warn("failed to reset login throttle", zap.Error(err))
	}

	log.Info("login succeeded", zap.Int64("user_id", user.ID))
	c.Redirect(http.StatusSeeOther, ac.dashboardView)
	c.Abort()
}

func (ac *AuthController) recordFailure(c *gin.Context, log *zap.Logger) {
	log.Info("login rejected", zap.String("ip", c.ClientIP()))
	if err := ac.throttle.Fail(c.Request.Context(), c.ClientIP()); err != nil {
		log.Warn("failed to record login failure", zap.Error(err))
	}
}

// Logout handles POST /logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		middleware.Logger(c).Error("session clear failed", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, ac.loginView)
}
