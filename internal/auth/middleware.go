package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireLogin guards a route behind an authenticated session. Anonymous
// requests get the original URL saved for post-login redirect, a flashed
// error, and a redirect to /login.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			sess := sessions.Default(c)
			sess.Set(redirectURLKey, c.Request.URL.RequestURI())
			sess.AddFlash("You must be logged in!")
			_ = sess.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin routes. Non-admin sessions get a 403 rather than
// a redirect, since there is no admin login page to send them to.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok || !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// PopRedirectURL returns and clears the saved post-login redirect target.
func PopRedirectURL(c *gin.Context) string {
	sess := sessions.Default(c)
	v, _ := sess.Get(redirectURLKey).(string)
	if v != "" {
		sess.Delete(redirectURLKey)
		_ = sess.Save()
	}
	return v
}
