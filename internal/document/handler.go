package document

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/vehicle"
)

type Handler struct {
	Store    *Store
	Vehicles *vehicle.Store
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{
		Store:    NewStore(db, log),
		Vehicles: vehicle.NewStore(db, log),
	}
}

func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/files", h.listFiles)
	router.POST("/files", auth.RequireAction(auth.ActionUploadFile), h.UploadFile)
	router.GET("/files/:id/preview", h.previewFile)
}

func (h *Handler) listFiles(c *gin.Context) {
	fileType := c.Query("type")
	if !ValidType(fileType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "type harus salah satu dari: sop, retro",
		})
		return
	}

	files, err := h.Store.ListByType(fileType, c.Query("chassis"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": files})
}

type UploadRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
	Chassis string `json:"chassis"`
	Type    string `json:"type"`
}

func (h *Handler) UploadFile(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	// 1. Validasi sebelum menyentuh database
	if strings.TrimSpace(req.Name) == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "name dan content wajib diisi",
		})
		return
	}
	if !ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "type harus salah satu dari: sop, retro",
		})
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "content bukan base64 valid",
		})
		return
	}
	if len(decoded) > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "file_too_large",
			"message": "ukuran file maksimal 5 MB",
		})
		return
	}

	// 2. chassis kosong = dokumen umum; selain GENERAL harus kendaraan yang ada
	chassis := strings.TrimSpace(req.Chassis)
	if chassis == "" {
		chassis = GeneralChassis
	}
	if chassis != GeneralChassis {
		exists, err := h.Vehicles.Exists(chassis)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "invalid_chassis",
				"message": "kendaraan tidak ditemukan",
			})
			return
		}
	}

	mime, _ := MIMEForName(req.Name)
	f := File{
		FileName:      req.Name,
		FileContent:   req.Content,
		ChassisNumber: chassis,
		FileType:      req.Type,
		Metadata: datatypes.JSONMap{
			"sizeBytes": len(decoded),
			"ext":       fileExt(req.Name),
			"mime":      mime,
		},
	}

	if err := h.Store.Create(&f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, f)
}

func (h *Handler) previewFile(c *gin.Context) {
	f, err := h.Store.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "file tidak ditemukan",
		})
		return
	}

	uri, ok := DataURI(f)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "not_previewable",
			"message": "file dengan ekstensi ini tidak bisa di-preview",
		})
		return
	}

	mime, _ := MIMEForName(f.FileName)
	c.JSON(http.StatusOK, gin.H{
		"fileName": f.FileName,
		"mime":     mime,
		"dataUri":  uri,
	})
}
