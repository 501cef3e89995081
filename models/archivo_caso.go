package models

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

// Coarse attachment type tags derived from MIME/extension
const (
	TipoArchivoImagen    = "imagen"
	TipoArchivoPDF       = "pdf"
	TipoArchivoDocumento = "documento"
	TipoArchivoAudio     = "audio"
	TipoArchivoVideo     = "video"
)

// Case type tags for archivos_caso.tipo_caso
const (
	TipoCasoGeneral   = "general"
	TipoCasoEspecial  = "especial"
	TipoCasoAcudiente = "acudiente"
	TipoCasoPrestamo  = "prestamo"
)

// ArchivoCaso is a file attached to exactly one case or loan, referenced by
// its numero_caso. Rows are removed with their owning record; the hook below
// removes the stored object.
type ArchivoCaso struct {
	ArchivoID       int        `gorm:"primaryKey;column:archivo_id" json:"archivo_id"`
	NumeroCaso      string     `gorm:"column:numero_caso;index" json:"numero_caso"`
	TipoCaso        string     `gorm:"column:tipo_caso" json:"tipo_caso"`
	NumeroDocumento string     `gorm:"column:numero_documento;index" json:"numero_documento"`
	NombreOriginal  string     `gorm:"column:nombre_original" json:"nombre_original"`
	RutaAlmacenada  string     `gorm:"column:ruta_almacenada" json:"ruta_almacenada"`
	MimeType        string     `gorm:"column:mime_type" json:"mime_type"`
	Tamano          int64      `gorm:"column:tamano" json:"tamano"`
	TipoArchivo     string     `gorm:"column:tipo_archivo" json:"tipo_archivo"`
	Descripcion     string     `gorm:"column:descripcion" json:"descripcion,omitempty"`
	UploadedBy      int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (ArchivoCaso) TableName() string {
	return "archivos_caso"
}

// AfterDelete removes the stored object once the row is gone. A missing file
// is not an error: the delete is idempotent.
func (a *ArchivoCaso) AfterDelete(tx *gorm.DB) error {
	if a.RutaAlmacenada == "" {
		return nil
	}
	if err := os.Remove(a.RutaAlmacenada); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete stored file %s: %v", a.RutaAlmacenada, err)
	}
	return nil
}
