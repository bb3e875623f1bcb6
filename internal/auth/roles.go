package auth

import (
	"os"
	"strings"
)

// Role tidak pernah disimpan di database. Role diturunkan dari email
// lewat tabel statis ini; email yang tidak terdaftar selalu jadi viewer.
var (
	defaultAdminEmails  = []string{"vr@gmail.com"}
	defaultUploadEmails = []string{"uploader@vehiclefleet.com"}
)

// RoleResolver memetakan email -> role. Lookup-nya exact match,
// deterministik, dan tidak pernah gagal.
type RoleResolver struct {
	admins    map[string]struct{}
	uploaders map[string]struct{}
}

// NewRoleResolver membangun resolver dari daftar email admin dan upload.
func NewRoleResolver(adminEmails, uploadEmails []string) *RoleResolver {
	r := &RoleResolver{
		admins:    make(map[string]struct{}),
		uploaders: make(map[string]struct{}),
	}
	for _, e := range adminEmails {
		if e = strings.TrimSpace(e); e != "" {
			r.admins[e] = struct{}{}
		}
	}
	for _, e := range uploadEmails {
		if e = strings.TrimSpace(e); e != "" {
			r.uploaders[e] = struct{}{}
		}
	}
	return r
}

// NewRoleResolverFromEnv baca ADMIN_EMAILS / UPLOAD_EMAILS (comma separated).
// Kalau env kosong pakai daftar default.
func NewRoleResolverFromEnv() *RoleResolver {
	admins := defaultAdminEmails
	uploads := defaultUploadEmails
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		admins = strings.Split(v, ",")
	}
	if v := os.Getenv("UPLOAD_EMAILS"); v != "" {
		uploads = strings.Split(v, ",")
	}
	return NewRoleResolver(admins, uploads)
}

// Resolve menurunkan role dari email. Total: selalu menghasilkan role,
// default viewer untuk email yang tidak dikenal (fail-closed).
func (r *RoleResolver) Resolve(email string) Role {
	if _, ok := r.admins[email]; ok {
		return RoleAdmin
	}
	if _, ok := r.uploaders[email]; ok {
		return RoleUpload
	}
	return RoleViewer
}

// Username diambil dari bagian lokal email (sebelum '@').
func UsernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	if email == "" {
		return "user"
	}
	return email
}
