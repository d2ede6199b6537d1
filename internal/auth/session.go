// Package auth provides cookie-session login state, flash messages, and the
// route guards used by the note and payment handlers.
package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/noteskart/noteskart/internal/users"
)

const (
	sessionName     = "noteskart_session"
	userKey         = "username"
	adminKey        = "is_admin"
	redirectURLKey  = "redirect_url"
	sessionLifetime = 7 * 24 * 60 * 60 // seconds
)

// SessionMiddleware returns the cookie-store session middleware. The secret
// signs the session cookie; it is independent of the payment secret.
func SessionMiddleware(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionLifetime,
		HttpOnly: true,
	})
	return sessions.Sessions(sessionName, store)
}

// Login records the user identity in the session.
func Login(c *gin.Context, u *users.User) error {
	sess := sessions.Default(c)
	sess.Set(userKey, u.Username)
	sess.Set(adminKey, u.IsAdmin)
	return sess.Save()
}

// Logout clears the session.
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// CurrentUser returns the logged-in username, if any.
func CurrentUser(c *gin.Context) (string, bool) {
	sess := sessions.Default(c)
	v := sess.Get(userKey)
	username, ok := v.(string)
	return username, ok && username != ""
}

// IsAdmin reports whether the session belongs to an admin.
func IsAdmin(c *gin.Context) bool {
	sess := sessions.Default(c)
	v, _ := sess.Get(adminKey).(bool)
	return v
}

// Flash queues a one-shot message for the next page load.
func Flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// Flashes drains and returns queued flash messages.
func Flashes(c *gin.Context) []string {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	_ = sess.Save()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
