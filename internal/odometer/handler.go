package odometer

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/vehicle"
)

type Handler struct {
	Store      *Store
	Vehicles   *vehicle.Store
	Summarizer *Summarizer
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{
		Store:      NewStore(db, log),
		Vehicles:   vehicle.NewStore(db, log),
		Summarizer: NewSummarizer(db, log),
	}
}

func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/odometer", h.listReadings)
	router.POST("/odometer", auth.RequireAction(auth.ActionAddReading), h.CreateReading)
	router.GET("/odometer/summary", h.summary)
	router.GET("/vehicles/:chassis/odometer", h.listByVehicle)
}

func (h *Handler) listReadings(c *gin.Context) {
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

type CreateReadingRequest struct {
	Chassis string   `json:"chassis"`
	Value   *float64 `json:"value"`
	Date    string   `json:"date"`
}

func (h *Handler) CreateReading(c *gin.Context) {
	var req CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	// 1. Validasi sebelum menyentuh database
	if strings.TrimSpace(req.Chassis) == "" || strings.TrimSpace(req.Date) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "chassis dan date wajib diisi",
		})
		return
	}
	if req.Value == nil || *req.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "value harus angka >= 0",
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

	row, err := h.Store.Create(req.Chassis, *req.Value, req.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, row)
}

func (h *Handler) summary(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	if !ValidPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "period harus salah satu dari: all, day, week, month",
		})
		return
	}

	rows, err := h.Summarizer.SummaryByDepot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	rows = FilterByPeriod(rows, period, h.Summarizer.now())

	c.JSON(http.StatusOK, gin.H{"data": rows, "period": period})
}
