package document

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

// ListByType mengembalikan file dengan tipe tertentu, terbaru dulu.
// chassis kosong = semua kendaraan.
func (s *Store) ListByType(fileType, chassis string) ([]File, error) {
	query := s.db.Where("file_type = ?", fileType).Order("uploaded_at DESC")
	if chassis != "" {
		query = query.Where("chassis_number = ?", chassis)
	}

	var files []File
	if err := query.Find(&files).Error; err != nil {
		s.log.Error("file list failed", zap.String("type", fileType), zap.Error(err))
		return nil, err
	}
	return files, nil
}

// GetByID: nil, nil artinya tidak ditemukan.
func (s *Store) GetByID(id string) (*File, error) {
	var f File
	err := s.db.Where("id = ?", id).First(&f).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		s.log.Error("file lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &f, nil
}

func (s *Store) Create(f *File) error {
	if err := s.db.Create(f).Error; err != nil {
		s.log.Error("file insert failed", zap.String("name", f.FileName), zap.Error(err))
		return err
	}
	return nil
}
