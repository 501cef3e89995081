package models

import "time"

// Aprendiz is the authoritative subject registry. The subject fields copied
// onto each case are a snapshot taken at creation time and are not updated
// when the registry row changes.
type Aprendiz struct {
	AprendizID      int        `gorm:"primaryKey;column:aprendiz_id" json:"aprendiz_id"`
	Nombre          string     `gorm:"column:nombre" json:"nombre"`
	TipoDocumento   string     `gorm:"column:tipo_documento" json:"tipo_documento"`
	NumeroDocumento string     `gorm:"column:numero_documento;uniqueIndex" json:"numero_documento"`
	NumeroFicha     string     `gorm:"column:numero_ficha" json:"numero_ficha"`
	Programa        string     `gorm:"column:programa" json:"programa"`
	Correo          string     `gorm:"column:correo" json:"correo,omitempty"`
	Telefono        string     `gorm:"column:telefono" json:"telefono,omitempty"`
	Estado          string     `gorm:"column:estado" json:"estado"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Aprendiz) TableName() string {
	return "aprendices"
}
