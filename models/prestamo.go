package models

import "time"

// Loan states
const (
	PrestamoEstadoPrestado = "Prestado"
	PrestamoEstadoDevuelto = "Devuelto"
)

// Prestamo tracks a loaned inventory item (PR numbering series). Loans share
// the attachment table with cases through numero_caso.
type Prestamo struct {
	PrestamoID          int       `gorm:"primaryKey;column:prestamo_id" json:"prestamo_id"`
	NumeroCaso          string    `gorm:"column:numero_caso;uniqueIndex" json:"numero_caso"`
	DescripcionElemento string    `gorm:"column:descripcion_elemento" json:"descripcion_elemento"`
	Placa               string    `gorm:"column:placa;index" json:"placa"`
	Estado              string    `gorm:"column:estado" json:"estado"`
	FechaPrestamo       time.Time `gorm:"column:fecha_prestamo" json:"fecha_prestamo"`

	// Borrower snapshot
	NombreSolicitante string `gorm:"column:nombre_solicitante" json:"nombre_solicitante"`
	TipoDocumento     string `gorm:"column:tipo_documento" json:"tipo_documento"`
	NumeroDocumento   string `gorm:"column:numero_documento;index" json:"numero_documento"`
	NumeroFicha       string `gorm:"column:numero_ficha" json:"numero_ficha"`

	FechaDevolucion *time.Time `gorm:"column:fecha_devolucion" json:"fecha_devolucion,omitempty"`
	Responsable     string     `gorm:"column:responsable" json:"responsable"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Archivos []ArchivoCaso `gorm:"foreignKey:NumeroCaso;references:NumeroCaso" json:"archivos,omitempty"`
}

func (Prestamo) TableName() string {
	return "prestamos"
}
