package vehicle_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	gsqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/vehicle"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(gsqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}
	if err := db.AutoMigrate(&vehicle.Vehicle{}); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}
	return db
}

// asUser menaruh CurrentUser di context sebelum handler jalan
func asUser(cu auth.CurrentUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextUserKey, cu)
		c.Next()
	}
}

var adminCU = auth.CurrentUser{ID: 1, Email: "vr@gmail.com", Username: "vr", Role: auth.RoleAdmin}
var viewerCU = auth.CurrentUser{ID: 2, Email: "viewer@vehiclefleet.com", Username: "viewer", Role: auth.RoleViewer}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestListVehicles_OrderedByRegistration(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	for _, v := range []vehicle.Vehicle{
		{ChassisNumber: "CH003", RegistrationNumber: "KA-03"},
		{ChassisNumber: "CH001", RegistrationNumber: "KA-01"},
		{ChassisNumber: "CH002", RegistrationNumber: "KA-02"},
	} {
		if err := db.Create(&v).Error; err != nil {
			t.Fatalf("failed to seed vehicle: %v", err)
		}
	}

	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []vehicle.Response `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(resp.Data))
	}
	for i, want := range []string{"KA-01", "KA-02", "KA-03"} {
		if resp.Data[i].Reg != want {
			t.Fatalf("position %d: expected reg %q, got %q", i, want, resp.Data[i].Reg)
		}
	}
}

func TestCreateVehicle_ParsesNumericFields(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/vehicles", asUser(adminCU), auth.RequireAction(auth.ActionAddVehicle), h.CreateVehicle)

	req := vehicle.CreateRequest{
		Chassis: "CH100", Reg: "KA-100", Depot: "Bangalore",
		Seating: "33", MotorKw: "150",
	}
	w := postJSON(router, "/vehicles", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", w.Code, w.Body.String())
	}

	var stored vehicle.Vehicle
	if err := db.Where("chassis_number = ?", "CH100").First(&stored).Error; err != nil {
		t.Fatalf("vehicle not stored: %v", err)
	}
	if stored.SeatingCapacity != 33 || stored.MotorPowerKw != 150 {
		t.Fatalf("numeric fields not parsed: seating=%d motorKw=%d", stored.SeatingCapacity, stored.MotorPowerKw)
	}

	var resp vehicle.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Seating != "33" || resp.MotorKw != "150" {
		t.Fatalf("expected string numbers back, got seating=%q motorKw=%q", resp.Seating, resp.MotorKw)
	}
}

func TestCreateVehicle_NonNumericSeating(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/vehicles", asUser(adminCU), auth.RequireAction(auth.ActionAddVehicle), h.CreateVehicle)

	w := postJSON(router, "/vehicles", vehicle.CreateRequest{Chassis: "CH100", Reg: "KA-100", Seating: "abc"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric seating, got %d", w.Code)
	}
}

func TestCreateVehicle_DuplicateChassis(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	if err := db.Create(&vehicle.Vehicle{ChassisNumber: "CH100", RegistrationNumber: "KA-100"}).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}

	router := gin.New()
	router.POST("/vehicles", asUser(adminCU), auth.RequireAction(auth.ActionAddVehicle), h.CreateVehicle)

	w := postJSON(router, "/vehicles", vehicle.CreateRequest{Chassis: "CH100", Reg: "KA-200"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate chassis, got %d, body: %s", w.Code, w.Body.String())
	}
}

func TestCreateVehicle_ViewerBlockedBeforeStore(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/vehicles", asUser(viewerCU), auth.RequireAction(auth.ActionAddVehicle), h.CreateVehicle)

	w := postJSON(router, "/vehicles", vehicle.CreateRequest{Chassis: "CH100", Reg: "KA-100"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", w.Code)
	}

	var count int64
	db.Model(&vehicle.Vehicle{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no vehicle written when viewer blocked, got %d rows", count)
	}
}

func TestGetVehicleByChassis(t *testing.T) {
	db := setupTestDB(t)
	h := vehicle.NewHandler(db, zap.NewNop())

	if err := db.Create(&vehicle.Vehicle{ChassisNumber: "CH001", RegistrationNumber: "KA-01", Depot: "Mysore"}).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}

	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/vehicles/CH001", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp vehicle.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Chassis != "CH001" || resp.Depot != "Mysore" {
		t.Fatalf("unexpected vehicle: %+v", resp)
	}

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/vehicles/NOPE", nil)
	router.ServeHTTP(w2, r2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown chassis, got %d", w2.Code)
	}
}

func TestChassis_LegacyFallback(t *testing.T) {
	v := vehicle.Vehicle{VehicleNumber: "VN123"}
	if got := v.Chassis(); got != "VN123" {
		t.Fatalf("expected fallback to vehicle_number, got %q", got)
	}
	v.ChassisNumber = "CH123"
	if got := v.Chassis(); got != "CH123" {
		t.Fatalf("expected chassis_number to win, got %q", got)
	}
}
