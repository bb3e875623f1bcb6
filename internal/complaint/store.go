package complaint

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// query dasar: complaints + registration_number & depot dari vehicles
func (s *Store) joined() *gorm.DB {
	return s.db.Table("complaints c").
		Select("c.*, v.registration_number, v.depot").
		Joins("JOIN vehicles v ON v.chassis_number = c.chassis_number")
}

// List mengembalikan semua complaint, terbaru dulu, dengan reg & depot
// kendaraan hasil join.
func (s *Store) List() ([]WithVehicle, error) {
	var rows []WithVehicle
	if err := s.joined().Order("c.created_at DESC").Scan(&rows).Error; err != nil {
		s.log.Error("complaint list failed", zap.Error(err))
		return nil, err
	}
	for i := range rows {
		rows[i].fillDate()
	}
	return rows, nil
}

// ListByChassis seperti List tapi difilter ke satu kendaraan.
func (s *Store) ListByChassis(chassis string) ([]WithVehicle, error) {
	var rows []WithVehicle
	if err := s.joined().Where("c.chassis_number = ?", chassis).
		Order("c.created_at DESC").Scan(&rows).Error; err != nil {
		s.log.Error("complaint list failed", zap.String("chassis", chassis), zap.Error(err))
		return nil, err
	}
	for i := range rows {
		rows[i].fillDate()
	}
	return rows, nil
}

// GetByID: nil, nil artinya tidak ditemukan.
func (s *Store) GetByID(id int64) (*WithVehicle, error) {
	var row WithVehicle
	err := s.joined().Where("c.id = ?", id).Scan(&row).Error
	if err != nil {
		s.log.Error("complaint lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	row.fillDate()
	return &row, nil
}

// Create menyimpan complaint baru (created_at dari server) dan
// mengembalikan record yang sudah di-join dengan kendaraannya.
func (s *Store) Create(chassis, text, status string) (*WithVehicle, error) {
	cm := Complaint{
		ChassisNumber: chassis,
		Description:   text,
		Status:        status,
	}
	if err := s.db.Create(&cm).Error; err != nil {
		s.log.Error("complaint insert failed", zap.String("chassis", chassis), zap.Error(err))
		return nil, err
	}
	return s.GetByID(cm.ID)
}

// SetStatus mengubah status satu complaint dan mengembalikan record
// ter-join. nil, nil kalau id tidak ada.
func (s *Store) SetStatus(id int64, status string) (*WithVehicle, error) {
	res := s.db.Model(&Complaint{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		s.log.Error("complaint status update failed", zap.Int64("id", id), zap.Error(res.Error))
		return nil, res.Error
	}
	return s.GetByID(id)
}
