package controllers

import (
	"github.com/gin-gonic/gin"

	"account-portal/internal/models"
	"account-portal/internal/views"
)

// notify writes n as JSON when the client asks for it and as the alert page
// otherwise.
func notify(c *gin.Context, status int, n models.Notification) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(status, n)
	default:
		c.HTML(status, views.NotifyTemplate, n)
	}
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
