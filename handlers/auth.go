package handlers

import (
	"errors"
	"net/http"

	"glowbook/middleware"
	"glowbook/services/notification"
	"glowbook/services/session"
	userSvc "glowbook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler handles account sign-up: validates the form, creates the
// account and queues a welcome email. Registration never logs the account in.
func RegisterHandler(sessions *session.Manager, notify notification.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req userSvc.RegistrationInput
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid registration request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := userSvc.ValidateRegistration(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec := sessions.For(middleware.ClientID(c))
		result := rec.Register(c.Request.Context(), req.Params())
		if result.Err != nil {
			status := http.StatusInternalServerError
			if errors.Is(result.Err, userSvc.ErrEmailTaken) || errors.Is(result.Err, userSvc.ErrUsernameTaken) {
				status = http.StatusConflict
			}
			logger.Error("User registration failed", zap.Error(result.Err))
			c.JSON(status, gin.H{"error": result.Err.Error()})
			return
		}

		if notify != nil {
			p := notification.Payload{
				Kind:  notification.KindRegistered,
				Email: result.User.Email,
				Name:  result.User.FullName,
			}
			if err := notify.Dispatch(c.Request.Context(), p); err != nil {
				logger.Warn("failed to queue welcome email", zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":                result.User,
			"pendingConfirmation": result.PendingConfirmation,
		})
	}
}

// LoginHandler handles password login against the remote account store.
func LoginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid login request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		rec := sessions.For(middleware.ClientID(c))
		result := rec.Login(c.Request.Context(), req.Email, req.Password)
		if !result.Success {
			if errors.Is(result.Err, session.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": session.ErrInvalidCredentials.Error()})
				return
			}
			logger.Error("Login failed", zap.Error(result.Err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":        result.User,
			"token":       result.Token,
			"isAdminAuth": rec.Current().IsAdminAuth,
		})
	}
}

// AdminLoginHandler handles the studio's local admin login. Credentials are
// checked against the built-in directory, never the account store.
func AdminLoginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid admin login request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		rec := sessions.For(middleware.ClientID(c))
		result := rec.AdminLogin(c.Request.Context(), req.Username, req.Password)
		if !result.Success {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenziali non valide"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":        result.User,
			"token":       result.Token,
			"isAdminAuth": true,
		})
	}
}

// LogoutHandler signs the client out of whichever identity was active and
// retires the client's reconciler; the next request starts from scratch.
func LogoutHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := middleware.ClientID(c)
		s := sessions.For(clientID).Logout(c.Request.Context())
		sessions.Drop(clientID)
		c.JSON(http.StatusOK, s)
	}
}

// SessionHandler resolves and returns the client's current session view.
func SessionHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := sessions.For(middleware.ClientID(c))
		s := rec.Resolve(c.Request.Context())
		c.JSON(http.StatusOK, s)
	}
}

// ResumeHandler re-validates the session after the client comes back from
// idle. The expired flag tells the client to show a sign-in notice.
func ResumeHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := sessions.For(middleware.ClientID(c))
		result := rec.Resume(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"session": result.Session,
			"expired": result.Expired,
		})
	}
}
