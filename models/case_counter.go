package models

// CaseCounter is the per-(series, year) sequence backing case-number
// issuance. It is only touched through the atomic statement in
// services/numbering.go, never through regular GORM saves.
type CaseCounter struct {
	Series    string `gorm:"primaryKey;column:series;size:4" json:"series"`
	Anio      int    `gorm:"primaryKey;column:anio" json:"anio"`
	LastValue int    `gorm:"column:last_value" json:"last_value"`
}

func (CaseCounter) TableName() string {
	return "case_counters"
}
