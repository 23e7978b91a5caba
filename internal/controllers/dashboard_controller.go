package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-portal/internal/session"
	"account-portal/internal/views"
)

type DashboardController struct {
	loginView string
}

func NewDashboardController(loginView string) *DashboardController {
	return &DashboardController{loginView: loginView}
}

// RequireLogin guards the dashboard. Browsers are sent to the login view,
// JSON clients get 401.
func (dc *DashboardController) RequireLogin() gin.HandlerFunc {
	return session.RequireLogin(func(c *gin.Context) {
		if wantsJSON(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Redirect(http.StatusSeeOther, dc.loginView)
	})
}

// Show handles GET /dashboard.html
func (dc *DashboardController) Show(c *gin.Context) {
	user, ok := session.UserFrom(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, user)
		return
	}
	c.HTML(http.StatusOK, views.DashboardTemplate, user)
}
