package complaint

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
	router.GET("/complaints", h.listComplaints)
	router.POST("/complaints", auth.RequireAction(auth.ActionAddComplaint), h.CreateComplaint)
	router.PATCH("/complaints/:id/status", auth.RequireAction(auth.ActionClearComplaint), h.SetStatus)
	router.GET("/vehicles/:chassis/complaints", h.listByVehicle)
}

func (h *Handler) listComplaints(c *gin.Context) {
	rows, err := h.Store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *Handler) listByVehicle(c *gin.Context) {
	chassis := c.Param("chassis")

	rows, err := h.Store.ListByChassis(chassis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type CreateComplaintRequest struct {
	Chassis string `json:"chassis"`
	Text    string `json:"text"`
	Status  string `json:"status"`
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	// 1. Validasi sebelum menyentuh database
	if strings.TrimSpace(req.Chassis) == "" || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "chassis dan text wajib diisi",
		})
		return
	}

	status := req.Status
	if status == "" {
		status = StatusOpen
	}
	if !ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "status harus salah satu dari: open, cleared",
		})
		return
	}

	// 2. chassis harus refer ke kendaraan yang ada
	exists, err := h.Vehicles.Exists(req.Chassis)
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

	row, err := h.Store.Create(req.Chassis, req.Text, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, row)
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "id harus berupa angka",
		})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	if !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "status harus salah satu dari: open, cleared",
		})
		return
	}

	existing, err := h.Store.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "complaint tidak ditemukan",
		})
		return
	}

	// Transisi yang diizinkan hanya open -> cleared.
	// Set ke status yang sama = no-op sukses (idempotent).
	if existing.Status == StatusCleared && req.Status == StatusOpen {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_transition",
			"message": "complaint yang sudah cleared tidak bisa dibuka lagi",
		})
		return
	}

	if existing.Status == req.Status {
		c.JSON(http.StatusOK, existing)
		return
	}

	row, err := h.Store.SetStatus(id, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, row)
}
