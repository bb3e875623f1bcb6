package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/pagination"
)

type Handler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

// Provisioning identitas login. Role tetap hasil resolve email,
// jadi membuat user di sini tidak memberi hak apa pun.
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/users", auth.RequireAction(auth.ActionManageUsers), h.ListUsers)
	router.POST("/users", auth.RequireAction(auth.ActionManageUsers), h.CreateUser)
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "email dan password wajib diisi",
		})
		return
	}

	// email harus unik
	var count int64
	if err := h.DB.Model(&User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		h.Log.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "duplicate_email",
			"message": "email sudah terdaftar",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash_error", "message": "failed to hash password"})
		return
	}

	u := User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Active:       true,
	}

	if err := h.DB.Create(&u).Error; err != nil {
		h.Log.Error("user insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	p := pagination.ParsePagination(c)
	if c.IsAborted() {
		return
	}

	var users []User
	var total int64

	query := h.DB.Model(&User{})
	if err := query.Count(&total).Error; err != nil {
		h.Log.Error("user count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	if err := query.Order("id").Limit(p.Limit).Offset(p.Offset).Find(&users).Error; err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pagination.Envelope(users, total, p))
}
