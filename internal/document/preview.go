package document

import "strings"

// MIME ditentukan dari ekstensi nama file, bukan dari isi.
// Hanya ekstensi di daftar ini yang bisa di-preview.
var previewMIME = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

func fileExt(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// MIMEForName: ("", false) kalau ekstensinya tidak dikenal
func MIMEForName(name string) (string, bool) {
	mime, ok := previewMIME[fileExt(name)]
	return mime, ok
}

// DataURI membangun data-URI untuk preview inline (image / embedded PDF).
// false kalau file tidak bisa di-preview.
func DataURI(f *File) (string, bool) {
	mime, ok := MIMEForName(f.FileName)
	if !ok {
		return "", false
	}
	return "data:" + mime + ";base64," + f.FileContent, true
}
