package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeSOP   = "sop"
	TypeRetro = "retro"

	// chassis sentinel untuk dokumen umum yang tidak terikat satu kendaraan
	GeneralChassis = "GENERAL"

	// batas ukuran file setelah decode base64
	MaxFileSize = 5 * 1024 * 1024
)

// Model untuk tabel file_uploads. Isi file disimpan sebagai base64 text
// di kolom file_content; append-only.
type File struct {
	ID            string            `json:"id"         gorm:"column:id;primaryKey"`
	FileName      string            `json:"name"       gorm:"column:file_name"`
	FileContent   string            `json:"content"    gorm:"column:file_content"`
	ChassisNumber string            `json:"chassis"    gorm:"column:chassis_number"`
	FileType      string            `json:"type"       gorm:"column:file_type"`
	UploadedAt    time.Time         `json:"uploadDate" gorm:"column:uploaded_at"`
	Metadata      datatypes.JSONMap `json:"metadata"   gorm:"column:metadata"`
}

func (File) TableName() string {
	return "file_uploads"
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now().UTC()
	}
	return nil
}

// ValidType: kategori file cuma dua, dibedakan tag saja
func ValidType(t string) bool {
	return t == TypeSOP || t == TypeRetro
}
