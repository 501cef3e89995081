package models

import "time"

// CasoGeneral is a general coordination case (CG numbering series).
type CasoGeneral struct {
	CasoID      int       `gorm:"primaryKey;column:caso_id" json:"caso_id"`
	NumeroCaso  string    `gorm:"column:numero_caso;uniqueIndex" json:"numero_caso"`
	Fecha       time.Time `gorm:"column:fecha" json:"fecha"`
	Estado      string    `gorm:"column:estado" json:"estado"`
	Categoria   string    `gorm:"column:categoria" json:"categoria"`
	Motivo      string    `gorm:"column:motivo;type:text" json:"motivo"`
	Descripcion string    `gorm:"column:descripcion;type:text" json:"descripcion,omitempty"`

	// Subject snapshot, copied from the aprendices registry at creation
	NombreAprendiz  string `gorm:"column:nombre_aprendiz" json:"nombre_aprendiz"`
	TipoDocumento   string `gorm:"column:tipo_documento" json:"tipo_documento"`
	NumeroDocumento string `gorm:"column:numero_documento;index" json:"numero_documento"`
	NumeroFicha     string `gorm:"column:numero_ficha" json:"numero_ficha"`

	Responsable string     `gorm:"column:responsable" json:"responsable"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Archivos []ArchivoCaso `gorm:"foreignKey:NumeroCaso;references:NumeroCaso" json:"archivos,omitempty"`
}

func (CasoGeneral) TableName() string {
	return "casos_generales"
}
