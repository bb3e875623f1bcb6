package odometer

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

func (s *Store) joined() *gorm.DB {
	return s.db.Table("odometer_readings r").
		Select("r.*, v.registration_number").
		Joins("JOIN vehicles v ON v.chassis_number = r.chassis_number")
}

// List mengembalikan readings terbaru dulu (by reading_date), dengan
// nomor registrasi kendaraan.
func (s *Store) List() ([]WithVehicle, error) {
	var rows []WithVehicle
	if err := s.joined().Order("r.reading_date DESC").Scan(&rows).Error; err != nil {
		s.log.Error("odometer list failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *Store) ListByChassis(chassis string) ([]WithVehicle, error) {
	var rows []WithVehicle
	if err := s.joined().Where("r.chassis_number = ?", chassis).
		Order("r.reading_date DESC").Scan(&rows).Error; err != nil {
		s.log.Error("odometer list failed", zap.String("chassis", chassis), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// ListAllNewestFirst dipakai aggregator: semua reading tanpa join,
// urut reading_date DESC. Urutan ini yang menentukan "reading terakhir"
// per kendaraan, aggregator tidak melakukan sort ulang.
func (s *Store) ListAllNewestFirst() ([]Reading, error) {
	var rows []Reading
	if err := s.db.Order("reading_date DESC").Find(&rows).Error; err != nil {
		s.log.Error("odometer list failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// Create menyimpan satu reading dan mengembalikan record ter-join.
func (s *Store) Create(chassis string, value float64, date string) (*WithVehicle, error) {
	r := Reading{
		ChassisNumber: chassis,
		Value:         value,
		Date:          date,
	}
	if err := s.db.Create(&r).Error; err != nil {
		s.log.Error("odometer insert failed", zap.String("chassis", chassis), zap.Error(err))
		return nil, err
	}

	var row WithVehicle
	if err := s.joined().Where("r.id = ?", r.ID).Scan(&row).Error; err != nil {
		s.log.Error("odometer lookup failed", zap.Int64("id", r.ID), zap.Error(err))
		return nil, err
	}
	return &row, nil
}
