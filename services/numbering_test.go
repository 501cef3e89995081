package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func expectIssuance(mock sqlmock.Sqlmock, serie string, year int, next int64) {
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO case_counters (series, anio, last_value) VALUES (?, ?, LAST_INSERT_ID(1)) "+
			"ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)")).
		WithArgs(serie, year).
		WillReturnResult(sqlmock.NewResult(next, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT LAST_INSERT_ID()")).
		WillReturnRows(sqlmock.NewRows([]string{"LAST_INSERT_ID()"}).AddRow(next))
}

func TestNextForYearFormatsNumber(t *testing.T) {
	db, mock := newMockDB(t)

	expectIssuance(mock, SerieCasoGeneral, 2026, 7)

	issuer := NewNumberIssuer()
	numero, err := issuer.NextForYear(db, SerieCasoGeneral, 2026)
	if err != nil {
		t.Fatalf("NextForYear failed: %v", err)
	}
	if numero != "CG-2026-007" {
		t.Errorf("expected CG-2026-007, got %s", numero)
	}
	if !IsCaseNumber(numero) {
		t.Errorf("issued number %s does not match the published shape", numero)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNextUsesClockYear(t *testing.T) {
	db, mock := newMockDB(t)

	expectIssuance(mock, SeriePrestamo, 2030, 1)

	clock := func() time.Time {
		return time.Date(2030, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	issuer := NewNumberIssuerWithClock(clock)
	numero, err := issuer.Next(db, SeriePrestamo)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if numero != "PR-2030-001" {
		t.Errorf("expected PR-2030-001, got %s", numero)
	}
}

func TestSequenceAdvancesPerCall(t *testing.T) {
	db, mock := newMockDB(t)

	expectIssuance(mock, SerieCasoEspecial, 2026, 1)
	expectIssuance(mock, SerieCasoEspecial, 2026, 2)

	issuer := NewNumberIssuer()
	first, err := issuer.NextForYear(db, SerieCasoEspecial, 2026)
	if err != nil {
		t.Fatalf("first issuance failed: %v", err)
	}
	second, err := issuer.NextForYear(db, SerieCasoEspecial, 2026)
	if err != nil {
		t.Fatalf("second issuance failed: %v", err)
	}
	if first != "CE-2026-001" || second != "CE-2026-002" {
		t.Errorf("expected CE-2026-001 then CE-2026-002, got %s then %s", first, second)
	}
}

func TestIssuanceExhaustedPast999(t *testing.T) {
	db, mock := newMockDB(t)

	expectIssuance(mock, SerieCasoAcudiente, 2026, 1000)

	issuer := NewNumberIssuer()
	_, err := issuer.NextForYear(db, SerieCasoAcudiente, 2026)
	if !errors.Is(err, ErrIssuanceExhausted) {
		t.Fatalf("expected ErrIssuanceExhausted, got %v", err)
	}
}

func TestLastNumberOfYearStillIssues(t *testing.T) {
	db, mock := newMockDB(t)

	expectIssuance(mock, SerieCasoGeneral, 2026, 999)

	issuer := NewNumberIssuer()
	numero, err := issuer.NextForYear(db, SerieCasoGeneral, 2026)
	if err != nil {
		t.Fatalf("NextForYear failed: %v", err)
	}
	if numero != "CG-2026-999" {
		t.Errorf("expected CG-2026-999, got %s", numero)
	}
}

func TestIsCaseNumber(t *testing.T) {
	valid := []string{"CG-2026-001", "PR-2026-999", "CAS-2025-042"}
	for _, s := range valid {
		if !IsCaseNumber(s) {
			t.Errorf("expected %s to be a valid case number", s)
		}
	}

	invalid := []string{"", "CG-2026-1000", "cg-2026-001", "CG-26-001", "CG-2026-01", "CG2026001", "C-2026-001"}
	for _, s := range invalid {
		if IsCaseNumber(s) {
			t.Errorf("expected %s to be invalid", s)
		}
	}
}
