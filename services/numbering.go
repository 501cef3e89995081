package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// Numbering series, one per record table.
const (
	SerieCasoGeneral   = "CG"
	SerieCasoEspecial  = "CE"
	SerieCasoAcudiente = "CA"
	SeriePrestamo      = "PR"
)

// ErrIssuanceExhausted is returned when a series has used all 999 numbers for
// the year. The caller must abort the enclosing creation transaction.
var ErrIssuanceExhausted = errors.New("case number series exhausted for this year")

const maxSequencePerYear = 999

var caseNumberPattern = regexp.MustCompile(`^[A-Z]{2,3}-\d{4}-\d{3}$`)

// IsCaseNumber reports whether s has the issued-number shape PREFIX-YEAR-NNN.
func IsCaseNumber(s string) bool {
	return caseNumberPattern.MatchString(s)
}

// NumberIssuer produces unique PREFIX-YEAR-NNN identifiers, scoped per series
// and calendar year. Issuance is backed by the case_counters table and is
// atomic across processes: the sequence bump happens in a single statement,
// so two concurrent creations can never read the same value.
type NumberIssuer struct {
	now func() time.Time
}

func NewNumberIssuer() *NumberIssuer {
	return &NumberIssuer{now: time.Now}
}

// NewNumberIssuerWithClock injects the clock used to derive the year.
func NewNumberIssuerWithClock(clock func() time.Time) *NumberIssuer {
	return &NumberIssuer{now: clock}
}

// Next issues the next number in the series for the current year. Call it
// inside the transaction that creates the record so a failed creation rolls
// the counter bump back with it.
func (i *NumberIssuer) Next(tx *gorm.DB, serie string) (string, error) {
	return i.NextForYear(tx, serie, i.now().Year())
}

// NextForYear issues the next number in the series for an explicit year.
func (i *NumberIssuer) NextForYear(tx *gorm.DB, serie string, year int) (string, error) {
	// LAST_INSERT_ID(expr) publishes the assigned value for this connection,
	// making insert-or-increment and read-back race free without locks.
	err := tx.Exec(
		"INSERT INTO case_counters (series, anio, last_value) VALUES (?, ?, LAST_INSERT_ID(1)) "+
			"ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)",
		serie, year,
	).Error
	if err != nil {
		return "", err
	}

	var next int64
	if err := tx.Raw("SELECT LAST_INSERT_ID()").Scan(&next).Error; err != nil {
		return "", err
	}

	// The published format is three digits; past 999 we fail closed rather
	// than silently widening the number.
	if next > maxSequencePerYear {
		return "", ErrIssuanceExhausted
	}

	return fmt.Sprintf("%s-%04d-%03d", serie, year, next), nil
}
