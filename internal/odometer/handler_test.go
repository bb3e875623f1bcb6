package odometer_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/username/evfleet-api/internal/auth"
	"github.com/username/evfleet-api/internal/odometer"
)

func asUser(cu auth.CurrentUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextUserKey, cu)
		c.Next()
	}
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateReading_Success(t *testing.T) {
	db := setupTestDB(t)
	seedVehicle(t, db, "CH001", "KA-01", "Bangalore")
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/odometer", asUser(auth.CurrentUser{ID: 2, Role: auth.RoleUpload}),
		auth.RequireAction(auth.ActionAddReading), h.CreateReading)

	w := postJSON(router, "/odometer", odometer.CreateReadingRequest{
		Chassis: "CH001", Value: floatPtr(1234), Date: "2024-06-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp odometer.WithVehicle
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Value != 1234 || resp.VehicleReg != "KA-01" {
		t.Fatalf("unexpected reading: %+v", resp)
	}
}

func TestCreateReading_NegativeValueRejected(t *testing.T) {
	db := setupTestDB(t)
	seedVehicle(t, db, "CH001", "KA-01", "Bangalore")
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/odometer", asUser(auth.CurrentUser{ID: 1, Role: auth.RoleAdmin}),
		auth.RequireAction(auth.ActionAddReading), h.CreateReading)

	w := postJSON(router, "/odometer", odometer.CreateReadingRequest{
		Chassis: "CH001", Value: floatPtr(-5), Date: "2024-06-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative value, got %d", w.Code)
	}

	var count int64
	db.Model(&odometer.Reading{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no reading written, got %d rows", count)
	}
}

func TestCreateReading_ViewerBlockedBeforeStore(t *testing.T) {
	db := setupTestDB(t)
	seedVehicle(t, db, "CH001", "KA-01", "Bangalore")
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/odometer", asUser(auth.CurrentUser{ID: 3, Role: auth.RoleViewer}),
		auth.RequireAction(auth.ActionAddReading), h.CreateReading)

	w := postJSON(router, "/odometer", odometer.CreateReadingRequest{
		Chassis: "CH001", Value: floatPtr(100), Date: "2024-06-01",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", w.Code)
	}

	var count int64
	db.Model(&odometer.Reading{}).Count(&count)
	if count != 0 {
		t.Fatalf("domain layer must not be invoked for viewer, got %d rows", count)
	}
}

func TestCreateReading_UnknownChassis(t *testing.T) {
	db := setupTestDB(t)
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	router.POST("/odometer", asUser(auth.CurrentUser{ID: 1, Role: auth.RoleAdmin}),
		auth.RequireAction(auth.ActionAddReading), h.CreateReading)

	w := postJSON(router, "/odometer", odometer.CreateReadingRequest{
		Chassis: "NOPE", Value: floatPtr(100), Date: "2024-06-01",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown chassis, got %d", w.Code)
	}
}

func TestListReadings_NewestFirstWithReg(t *testing.T) {
	db := setupTestDB(t)
	seedVehicle(t, db, "CH001", "KA-01", "Bangalore")
	seedReading(t, db, "CH001", 100, "2024-01-01")
	seedReading(t, db, "CH001", 200, "2024-03-01")
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/odometer", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []odometer.WithVehicle `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(resp.Data))
	}
	if resp.Data[0].Value != 200 || resp.Data[0].VehicleReg != "KA-01" {
		t.Fatalf("expected newest reading first with reg, got %+v", resp.Data[0])
	}
}

func TestSummaryEndpoint_InvalidPeriod(t *testing.T) {
	db := setupTestDB(t)
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/odometer/summary?period=year", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", w.Code)
	}
}

func TestSummaryEndpoint_DefaultAll(t *testing.T) {
	db := setupTestDB(t)
	seedVehicle(t, db, "CH001", "KA-01", "Bangalore")
	h := odometer.NewHandler(db, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/odometer/summary", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data   []odometer.DepotSummary `json:"data"`
		Period string                  `json:"period"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Period != "all" {
		t.Fatalf("expected default period all, got %q", resp.Period)
	}
	if len(resp.Data) != 1 || resp.Data[0].Depot != "Bangalore" {
		t.Fatalf("unexpected summary: %+v", resp.Data)
	}
}
