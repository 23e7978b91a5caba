package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"account-portal/internal/entities"
	"account-portal/internal/models"
)

const (
	CookieName = "portal_session"

	keyUserID   = "user_id"
	keyFullname = "fullname"

	// ContextUserKey carries the *models.SessionUser set by RequireLogin
	ContextUserKey = "session.user"

	cookieOptionsKey = "session.cookie_options"
)

var ErrNoSession = errors.New("no authenticated session")

// Options configures the cookie that carries the session
type Options struct {
	Secret []byte
	MaxAge time.Duration
	Secure bool
}

// Middleware attaches the signed-cookie session store to every request
func Middleware(opts Options) gin.HandlerFunc {
	cookieOpts := sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store := cookie.NewStore(opts.Secret)
	store.Options(cookieOpts)
	handler := sessions.Sessions(CookieName, store)

	return func(c *gin.Context) {
		c.Set(cookieOptionsKey, cookieOpts)
		handler(c)
	}
}

// Start replaces whatever the client's session held with user's id and name
func Start(c *gin.Context, user *entities.User) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(keyUserID, user.ID)
	s.Set(keyFullname, user.Fullname)
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the authenticated user, or ErrNoSession
func Current(c *gin.Context) (*models.SessionUser, error) {
	s := sessions.Default(c)
	id, ok := s.Get(keyUserID).(int64)
	if !ok {
		return nil, ErrNoSession
	}
	fullname, _ := s.Get(keyFullname).(string)
	return &models.SessionUser{UserID: id, Fullname: fullname}, nil
}

// Clear ends the session. The expiring cookie keeps the store's attributes.
func Clear(c *gin.Context) error {
	v, _ := c.Get(cookieOptionsKey)
	expired, _ := v.(sessions.Options)
	if expired.Path == "" {
		expired.Path = "/"
	}
	expired.MaxAge = -1

	s := sessions.Default(c)
	s.Clear()
	s.Options(expired)
	return s.Save()
}

// RequireLogin aborts with onMissing unless the request carries a session.
// On success the user is stored under ContextUserKey.
func RequireLogin(onMissing gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := Current(c)
		if err != nil {
			onMissing(c)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the user stored by RequireLogin
func UserFrom(c *gin.Context) (*models.SessionUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.SessionUser)
	return user, ok
}
