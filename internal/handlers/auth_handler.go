package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/config"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/models"
	"github.com/hospitalhq/hospital-api/internal/validators"
)

const tokenTTL = time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Role            string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all required fields.")
		return
	}

	if _, ok := access.ParseRole(req.Role); !ok {
		httperr.BadRequest(c, "invalid_role", "Role must be admin, doctor or patient.")
		return
	}

	if req.Password != req.ConfirmPassword {
		httperr.BadRequest(c, "password_mismatch", "Passwords do not match.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Server error. Please try again later.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "user_already_exists", "User with this username or email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Server error. Please try again later.")
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		Username:     &username,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index is the source of truth.
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "user_already_exists", "User with this username or email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful! You can now log in.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please enter both username and password.")
		return
	}

	var user models.User
	if err := h.db.
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Server error. Please try again later.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.BadRequest(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful! Welcome back, " + user.FullName + ".",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	p := middleware.Principal(c)

	var user models.User
	if err := h.db.First(&user, p.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
