package user

import "time"

// Model untuk tabel users. Ini murni identitas login:
// role TIDAK disimpan di sini, role diturunkan dari email (lihat internal/auth).
type User struct {
	ID           int64     `json:"id"        gorm:"column:id;primaryKey"`
	Email        string    `json:"email"     gorm:"column:email;uniqueIndex"`
	PasswordHash string    `json:"-"         gorm:"column:password_hash"`
	FullName     string    `json:"fullName"  gorm:"column:full_name"`
	Active       bool      `json:"active"    gorm:"column:active"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}
