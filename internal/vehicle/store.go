package vehicle

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store = lapisan akses data kendaraan. Error dilaporkan eksplisit ke
// caller; tidak ada "diam-diam balikin kosong" — handler yang memutuskan
// response-nya.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// List mengembalikan satu halaman kendaraan, urut registration_number ASC
// (urutan leksikal dari database, sama dengan urutan tampilan fleet list).
func (s *Store) List(limit, offset int) ([]Vehicle, int64, error) {
	var vehicles []Vehicle
	var total int64

	query := s.db.Model(&Vehicle{})
	if err := query.Count(&total).Error; err != nil {
		s.log.Error("vehicle count failed", zap.Error(err))
		return nil, 0, err
	}
	if err := query.Order("registration_number ASC").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		s.log.Error("vehicle list failed", zap.Error(err))
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ListAll dipakai aggregator odometer; tanpa pagination.
func (s *Store) ListAll() ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := s.db.Order("registration_number ASC").Find(&vehicles).Error; err != nil {
		s.log.Error("vehicle list failed", zap.Error(err))
		return nil, err
	}
	return vehicles, nil
}

// GetByChassis: nil, nil artinya tidak ditemukan (bukan error).
func (s *Store) GetByChassis(chassis string) (*Vehicle, error) {
	var v Vehicle
	err := s.db.Where("chassis_number = ? OR vehicle_number = ?", chassis, chassis).First(&v).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		s.log.Error("vehicle lookup failed", zap.String("chassis", chassis), zap.Error(err))
		return nil, err
	}
	return &v, nil
}

// Exists: cek referensi chassis sebelum menulis complaint / reading / file.
func (s *Store) Exists(chassis string) (bool, error) {
	var count int64
	err := s.db.Model(&Vehicle{}).
		Where("chassis_number = ? OR vehicle_number = ?", chassis, chassis).
		Count(&count).Error
	if err != nil {
		s.log.Error("vehicle exists check failed", zap.String("chassis", chassis), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(v *Vehicle) error {
	if err := s.db.Create(v).Error; err != nil {
		s.log.Error("vehicle insert failed", zap.String("chassis", v.ChassisNumber), zap.Error(err))
		return err
	}
	return nil
}
