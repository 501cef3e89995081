package models

import "time"

// CasoAcudiente is a guardian-related case (CA numbering series). It records
// the guardian contacted about the apprentice.
type CasoAcudiente struct {
	CasoID      int       `gorm:"primaryKey;column:caso_id" json:"caso_id"`
	NumeroCaso  string    `gorm:"column:numero_caso;uniqueIndex" json:"numero_caso"`
	Fecha       time.Time `gorm:"column:fecha" json:"fecha"`
	Estado      string    `gorm:"column:estado" json:"estado"`
	Categoria   string    `gorm:"column:categoria" json:"categoria"`
	Motivo      string    `gorm:"column:motivo;type:text" json:"motivo"`
	Descripcion string    `gorm:"column:descripcion;type:text" json:"descripcion,omitempty"`

	NombreAprendiz  string `gorm:"column:nombre_aprendiz" json:"nombre_aprendiz"`
	TipoDocumento   string `gorm:"column:tipo_documento" json:"tipo_documento"`
	NumeroDocumento string `gorm:"column:numero_documento;index" json:"numero_documento"`
	NumeroFicha     string `gorm:"column:numero_ficha" json:"numero_ficha"`

	NombreAcudiente   string `gorm:"column:nombre_acudiente" json:"nombre_acudiente"`
	Parentesco        string `gorm:"column:parentesco" json:"parentesco"`
	TelefonoAcudiente string `gorm:"column:telefono_acudiente" json:"telefono_acudiente,omitempty"`

	Responsable string     `gorm:"column:responsable" json:"responsable"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Archivos []ArchivoCaso `gorm:"foreignKey:NumeroCaso;references:NumeroCaso" json:"archivos,omitempty"`
}

func (CasoAcudiente) TableName() string {
	return "casos_acudientes"
}
