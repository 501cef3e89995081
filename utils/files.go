// utils/files.go - Attachment storage helpers
package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"case-management-api/models"
)

// Attachment size limits
const (
	MaxArchivoSize = 5 * 1024 * 1024 // general attachments
	MaxFirmaSize   = 2 * 1024 * 1024 // signature images
)

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
}

// ValidateArchivo checks an uploaded attachment against the extension
// allow-list and size cap. Returns a client-facing message when invalid.
func ValidateArchivo(file *multipart.FileHeader) (bool, string) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return false, fmt.Sprintf("File type %s not allowed", ext)
	}
	if file.Size > MaxArchivoSize {
		return false, "File size exceeds 5MB limit"
	}
	return true, ""
}

// ValidateFirma checks a signature upload: image only, 2MB cap.
func ValidateFirma(file *multipart.FileHeader) (bool, string) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return false, "Signature must be an image"
	}
	if file.Size > MaxFirmaSize {
		return false, "Signature size exceeds 2MB limit"
	}
	return true, ""
}

// MimeTypeForFile resolves the MIME type, preferring the multipart header and
// falling back to the extension map.
func MimeTypeForFile(file *multipart.FileHeader) string {
	if mime := file.Header.Get("Content-Type"); mime != "" {
		return mime
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if mime, ok := allowedExtensions[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// TipoArchivoFromMime derives the coarse attachment tag stored on the row.
func TipoArchivoFromMime(mimeType string) string {
	switch {
	case mimeType == "application/pdf":
		return models.TipoArchivoPDF
	case strings.HasPrefix(mimeType, "image/"):
		return models.TipoArchivoImagen
	case strings.HasPrefix(mimeType, "audio/"):
		return models.TipoArchivoAudio
	case strings.HasPrefix(mimeType, "video/"):
		return models.TipoArchivoVideo
	default:
		return models.TipoArchivoDocumento
	}
}

// GenerateStoredFilename builds a collision-resistant stored name keeping the
// original extension.
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), suffix, ext)
}

// EnsureCaseFolder creates (if needed) and returns the attachment directory
// for a case number under the upload root.
func EnsureCaseFolder(uploadPath, numeroCaso string) (string, error) {
	folder := filepath.Join(uploadPath, numeroCaso)
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", err
	}
	return folder, nil
}
