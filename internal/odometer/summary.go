package odometer

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/username/evfleet-api/internal/vehicle"
)

const (
	// depot untuk kendaraan yang kolom depot-nya kosong
	UnknownDepot = "Unknown Depot"
	// penanda tanggal untuk kendaraan tanpa reading sama sekali
	NoReadingsMarker = "No readings"
)

// VehicleReading = satu kendaraan di dalam ringkasan depot
type VehicleReading struct {
	Reg         string  `json:"reg"`
	LastReading float64 `json:"lastReading"`
	Date        string  `json:"date"`
}

// DepotSummary = satu baris ringkasan per depot
type DepotSummary struct {
	Depot         string           `json:"depot"`
	TotalOdometer float64          `json:"totalOdometer"`
	VehicleCount  int              `json:"vehicleCount"`
	Vehicles      []VehicleReading `json:"vehicles"`
}

// Summarizer membangun ringkasan odometer per depot. Ringkasan dihitung
// ulang setiap request, tidak ada cache. now bisa di-inject supaya
// filter periode bisa dites dengan jam tetap.
type Summarizer struct {
	vehicles *vehicle.Store
	readings *Store
	now      func() time.Time
}

func NewSummarizer(db *gorm.DB, log *zap.Logger) *Summarizer {
	return NewSummarizerWithClock(db, log, time.Now)
}

// NewSummarizerWithClock dipakai test untuk mematok "sekarang".
func NewSummarizerWithClock(db *gorm.DB, log *zap.Logger, now func() time.Time) *Summarizer {
	return &Summarizer{
		vehicles: vehicle.NewStore(db, log),
		readings: NewStore(db, log),
		now:      now,
	}
}

// SummaryByDepot:
//  1. ambil semua kendaraan dan semua reading (reading sudah urut terbaru dulu)
//  2. kelompokkan kendaraan per depot, urutan depot = urutan pertama kali terlihat
//  3. reading terakhir per kendaraan = reading pertama yang chassis-nya cocok
//  4. kendaraan tanpa reading menyumbang 0 dan tanggal "No readings",
//     tapi tetap dihitung di vehicleCount
func (s *Summarizer) SummaryByDepot() ([]DepotSummary, error) {
	vehicles, err := s.vehicles.ListAll()
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.ListAllNewestFirst()
	if err != nil {
		return nil, err
	}

	// reading pertama (= terbaru) per chassis
	latest := make(map[string]Reading, len(readings))
	for _, r := range readings {
		if _, seen := latest[r.ChassisNumber]; !seen {
			latest[r.ChassisNumber] = r
		}
	}

	var order []string
	groups := make(map[string][]vehicle.Vehicle)
	for _, v := range vehicles {
		depot := v.Depot
		if depot == "" {
			depot = UnknownDepot
		}
		if _, ok := groups[depot]; !ok {
			order = append(order, depot)
		}
		groups[depot] = append(groups[depot], v)
	}

	summary := make([]DepotSummary, 0, len(order))
	for _, depot := range order {
		row := DepotSummary{Depot: depot}
		for _, v := range groups[depot] {
			vr := VehicleReading{
				Reg:         v.RegistrationNumber,
				LastReading: 0,
				Date:        NoReadingsMarker,
			}
			if r, ok := latest[v.Chassis()]; ok {
				vr.LastReading = r.Value
				vr.Date = r.Date
			}
			row.Vehicles = append(row.Vehicles, vr)
			row.TotalOdometer += vr.LastReading
		}
		row.VehicleCount = len(row.Vehicles)
		summary = append(summary, row)
	}

	return summary, nil
}

// jendela waktu per periode; "month" = 30 hari, bukan bulan kalender
var periodWindows = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// ValidPeriod: periode filter yang dikenal
func ValidPeriod(period string) bool {
	if period == "all" {
		return true
	}
	_, ok := periodWindows[period]
	return ok
}

// FilterByPeriod menyaring ringkasan: hanya kendaraan yang reading
// terakhirnya masih dalam jendela now-window yang dipertahankan; total
// dan count dihitung ulang; depot yang jadi kosong dibuang.
// period "all" = identitas (slice yang sama dikembalikan).
func FilterByPeriod(rows []DepotSummary, period string, now time.Time) []DepotSummary {
	if period == "all" {
		return rows
	}
	window, ok := periodWindows[period]
	if !ok {
		return rows
	}

	filtered := make([]DepotSummary, 0, len(rows))
	for _, row := range rows {
		var kept []VehicleReading
		var total float64
		for _, v := range row.Vehicles {
			t, ok := parseReadingDate(v.Date)
			// tanggal yang tidak bisa di-parse (termasuk "No readings")
			// tidak pernah masuk jendela
			if !ok || now.Sub(t) > window {
				continue
			}
			kept = append(kept, v)
			total += v.LastReading
		}
		if len(kept) == 0 {
			continue
		}
		filtered = append(filtered, DepotSummary{
			Depot:         row.Depot,
			TotalOdometer: total,
			VehicleCount:  len(kept),
			Vehicles:      kept,
		})
	}
	return filtered
}

// reading_date bisa "2006-01-02" (input form) atau RFC3339 (import)
func parseReadingDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
