package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/ratelimit"
)

// RequireAdmin es la única implementación del gate de rol: resuelve el
// rol 1:1 del usuario autenticado y, solo una vez autorizado, aplica el
// rate limit por usuario — así un 401 nunca se disfraza de 429.
func RequireAdmin(db *gorm.DB, limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uuid.UUID)

		var role models.UserRole
		if err := db.First(&role, "user_id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role_not_found"})
			return
		}

		if role.Role != "admin" {
			// sesión autenticada pero sin rol admin en zona protegida:
			// se revoca para no dejar una sesión ambigua viva
			revokeSession(db, c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_admin"})
			return
		}

		res := limiter.Allow(
			"admin:"+userID.String(),
			ratelimit.AdminMaxRequests,
			ratelimit.AdminWindow,
		)
		if !res.Allowed {
			httperr.TooManyRequests(c, "rate_limited", "Demasiadas peticiones. Espera un momento.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func revokeSession(db *gorm.DB, c *gin.Context) {
	sid, ok := c.Get(ContextSessionID)
	if !ok {
		return
	}
	now := time.Now()
	db.Model(&models.Session{}).
		Where("id = ?", sid.(uuid.UUID)).
		Update("revoked_at", &now)
}

// PublicRateLimit protege los endpoints públicos por IP del cliente.
func PublicRateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Allow(
			"intake:"+c.ClientIP(),
			ratelimit.IntakeMaxRequests,
			ratelimit.IntakeWindow,
		)
		if !res.Allowed {
			httperr.TooManyRequests(c, "rate_limited", "Demasiadas peticiones. Inténtalo más tarde.")
			c.Abort()
			return
		}

		c.Next()
	}
}
