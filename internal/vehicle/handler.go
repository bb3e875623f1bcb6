package vehicle

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/pagination"
)

// Handler menampung dependency untuk handler kendaraan
type Handler struct {
	Store *Store
}

// NewHandler membuat handler baru
func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{Store: NewStore(db, log)}
}

// RegisterRoutes mendaftarkan semua route kendaraan
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/vehicles", h.listVehicles)
	router.POST("/vehicles", auth.RequireAction(auth.ActionAddVehicle), h.CreateVehicle)
	router.GET("/vehicles/:chassis", h.getVehicleByChassis)
}

func (h *Handler) listVehicles(c *gin.Context) {
	p := pagination.ParsePagination(c)
	if c.IsAborted() {
		return
	}

	vehicles, total, err := h.Store.List(p.Limit, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	resp := make([]Response, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, v.ToResponse())
	}

	c.JSON(http.StatusOK, pagination.Envelope(resp, total, p))
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	// role sudah dicek oleh RequireAction, di sini tinggal validasi input

	// 1. Ambil body request
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid",
		})
		return
	}

	if strings.TrimSpace(req.Chassis) == "" || strings.TrimSpace(req.Reg) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "chassis dan reg wajib diisi",
		})
		return
	}

	// 2. seating & motorKw datang sebagai string dari form; parse ke int.
	// Kosong = 0, selain itu harus angka.
	seating, ok := parseNumericField(c, "seating", req.Seating)
	if !ok {
		return
	}
	motorKw, ok := parseNumericField(c, "motorKw", req.MotorKw)
	if !ok {
		return
	}

	// 3. chassis harus unik
	exists, err := h.Store.Exists(req.Chassis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "duplicate_chassis",
			"message": "chassis sudah terdaftar",
		})
		return
	}

	v := Vehicle{
		ChassisNumber:      req.Chassis,
		RegistrationNumber: req.Reg,
		Depot:              req.Depot,
		MotorNumber:        req.Motor,
		DispatchDate:       req.Dispatch,
		RegistrationDate:   req.RegDate,
		ManufacturingDate:  req.MfgDate,
		Model:              req.Model,
		Colour:             req.Colour,
		SeatingCapacity:    seating,
		MotorPowerKw:       motorKw,
	}

	if err := h.Store.Create(&v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, v.ToResponse())
}

func (h *Handler) getVehicleByChassis(c *gin.Context) {
	chassis := c.Param("chassis")

	v, err := h.Store.GetByChassis(chassis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "kendaraan tidak ditemukan",
		})
		return
	}

	c.JSON(http.StatusOK, v.ToResponse())
}

// parseNumericField: kosong boleh (jadi 0), selain itu wajib angka.
func parseNumericField(c *gin.Context, name, value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": name + " harus berupa angka",
		})
		return 0, false
	}
	return n, true
}
