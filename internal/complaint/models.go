package complaint

import "time"

const (
	StatusOpen    = "open"
	StatusCleared = "cleared"
)

// Model untuk tabel complaints. Satu complaint selalu milik satu
// kendaraan (by chassis). Lifecycle: dibuat open, admin bisa set
// cleared; tidak ada transisi lain dan tidak ada delete.
type Complaint struct {
	ID            int64     `json:"id"      gorm:"column:id;primaryKey"`
	ChassisNumber string    `json:"chassis" gorm:"column:chassis_number"`
	Description   string    `json:"text"    gorm:"column:description"`
	Status        string    `json:"status"  gorm:"column:status"`
	CreatedAt     time.Time `json:"-"       gorm:"column:created_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ValidStatus: status complaint cuma dua nilai
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusCleared
}

// WithVehicle = complaint plus kolom kendaraan hasil join, hanya untuk
// tampilan. reg & depot tidak pernah disimpan di tabel complaints.
type WithVehicle struct {
	Complaint
	Date         string `json:"date"         gorm:"-"`
	VehicleReg   string `json:"vehicleReg"   gorm:"column:registration_number"`
	VehicleDepot string `json:"vehicleDepot" gorm:"column:depot"`
}

// tanggal tampilan = bagian tanggal dari created_at
func (w *WithVehicle) fillDate() {
	w.Date = w.CreatedAt.Format("2006-01-02")
}
