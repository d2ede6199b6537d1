package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noteskart/noteskart/internal/auth"
	"github.com/noteskart/noteskart/internal/notes"
	"github.com/noteskart/noteskart/internal/users"
	"github.com/noteskart/noteskart/internal/validation"
)

// RegisterUserRoutes registers registration, login, logout, and the admin
// dashboard.
func RegisterUserRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	userStore := users.NewStore(cfg.DynamoDBClient, cfg.UsersTable)
	noteStore := notes.NewStore(cfg.DynamoDBClient, cfg.NotesTable)

	r.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "login required", "flashes": auth.Flashes(c)})
	})

	r.POST("/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u, err := userStore.Register(c.Request.Context(), req.Username, req.Email, req.Password, false)
		if err != nil {
			if errors.Is(err, users.ErrUsernameTaken) {
				c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
				return
			}
			log.Printf("[users] register failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
			return
		}

		if err := auth.Login(c, u); err != nil {
			log.Printf("[users] session save failed: %v", err)
		}
		auth.Flash(c, "Registered successfully!")
		c.JSON(http.StatusCreated, gin.H{"username": u.Username})
	})

	r.POST("/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u, err := userStore.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, users.ErrInvalidCredentials) {
				auth.Flash(c, "Invalid username or password")
				c.Redirect(http.StatusFound, "/login")
				return
			}
			log.Printf("[users] authenticate failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
			return
		}

		if err := auth.Login(c, u); err != nil {
			log.Printf("[users] session save failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
			return
		}
		auth.Flash(c, "Logged in successfully!")
		if target := auth.PopRedirectURL(c); target != "" {
			c.Redirect(http.StatusFound, target)
			return
		}
		c.Redirect(http.StatusFound, "/listnotes")
	})

	r.POST("/register-admin", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u, err := userStore.Register(c.Request.Context(), req.Username, req.Email, req.Password, true)
		if err != nil {
			if errors.Is(err, users.ErrUsernameTaken) {
				c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
				return
			}
			log.Printf("[users] register admin failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering admin user"})
			return
		}

		if err := auth.Login(c, u); err != nil {
			log.Printf("[users] session save failed: %v", err)
		}
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.POST("/admin/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u, err := userStore.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil || !u.IsAdmin {
			auth.Flash(c, "Invalid admin credentials")
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid admin credentials"})
			return
		}

		if err := auth.Login(c, u); err != nil {
			log.Printf("[users] session save failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/logout", func(c *gin.Context) {
		if err := auth.Logout(c); err != nil {
			log.Printf("[users] logout failed: %v", err)
		}
		auth.Flash(c, "Logged out successfully!")
		c.Redirect(http.StatusFound, "/")
	})

	r.GET("/admin/dashboard", auth.RequireAdmin(), func(c *gin.Context) {
		ctx := c.Request.Context()
		total, err := noteStore.Count(ctx)
		if err != nil {
			log.Printf("[admin] count failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error loading dashboard"})
			return
		}
		all, err := noteStore.List(ctx)
		if err != nil {
			log.Printf("[admin] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error loading dashboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "notes": all})
	})
}
