package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB    *gorm.DB
	Roles *RoleResolver
	Log   *zap.Logger
}

func NewHandler(db *gorm.DB, roles *RoleResolver, log *zap.Logger) *Handler {
	return &Handler{DB: db, Roles: roles, Log: log}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session = bentuk user yang dilihat client: id, username, role.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Session `json:"user"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
}

// RegisterSessionRoutes didaftarkan di group yang sudah pakai AuthMiddleware.
func (h *Handler) RegisterSessionRoutes(r gin.IRoutes) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	// 1. Cari user by email
	// struct lokal supaya tidak mengimpor package `user` (menghindari import cycle)
	type authUser struct {
		ID           int64
		Email        string
		PasswordHash string
		Active       bool
	}

	var u authUser
	if err := h.DB.Table("users").Where("email = ? AND active = ?", req.Email, true).First(&u).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "email atau password salah",
		})
		return
	}

	// 2. Cek password
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "email atau password salah",
		})
		return
	}

	// 3. Role TIDAK diambil dari database: selalu hasil resolve email
	role := h.Roles.Resolve(u.Email)
	username := UsernameFromEmail(u.Email)

	claims := UserClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		h.Log.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "token_error",
			"message": "failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: tokenString,
		User:  Session{ID: u.ID, Username: username, Role: role},
	})
}

// Logout: token JWT stateless, server tidak menyimpan sesi.
// Endpoint ini ada supaya client punya satu tempat untuk menutup sesi
// (client yang menghapus token tersimpan).
func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Me mengembalikan sesi yang sedang aktif; dipakai client saat startup
// untuk memulihkan identitas tanpa login ulang.
func (h *Handler) Me(c *gin.Context) {
	cu, ok := GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "user belum login",
		})
		return
	}
	c.JSON(http.StatusOK, Session{ID: cu.ID, Username: cu.Username, Role: cu.Role})
}
