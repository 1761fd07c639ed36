package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/httperr"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/middleware"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// No hay registro público: los usuarios del back office se provisionan
// directamente en base de datos.

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	var role models.UserRole
	if err := h.db.First(&role, "user_id = ?", user.ID).Error; err != nil {
		httperr.Unauthorized(c, "role_not_found", "Usuario sin rol asignado.")
		return
	}

	session := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := h.db.Create(&session).Error; err != nil {
		httperr.Internal(c, "session_create_failed", "Error interno.")
		return
	}

	token, err := h.generateToken(&user, &session, role.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  role.Role,
		},
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.MustGet(middleware.ContextSessionID).(uuid.UUID)

	now := time.Now()
	if err := h.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked_at", &now).Error; err != nil {

		httperr.Internal(c, "logout_failed", "Error interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	var role models.UserRole
	h.db.First(&role, "user_id = ?", userID)

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  role.Role,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, session *models.Session, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"sid":  session.ID.String(),
		"role": role,
		"exp":  session.ExpiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
