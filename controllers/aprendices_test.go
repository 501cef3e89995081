package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"case-management-api/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func swapConfigDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock := newMockGorm(t)
	orig := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = orig })

	return mock
}

func deleteAprendizRequest(t *testing.T, numeroDocumento string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "numero_documento", Value: numeroDocumento}}

	DeleteAprendiz(c)
	return w
}

func TestDeleteAprendizSoftDeletes(t *testing.T) {
	mock := swapConfigDB(t)

	mock.ExpectQuery("SELECT .+ FROM `aprendices`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"aprendiz_id", "nombre", "numero_documento"}).
			AddRow(3, "Juan Garcia", "1098765432"))
	mock.ExpectExec("UPDATE `aprendices` SET `delete_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := deleteAprendizRequest(t, "1098765432")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteAprendizNotFound(t *testing.T) {
	mock := swapConfigDB(t)

	mock.ExpectQuery("SELECT .+ FROM `aprendices`").
		WillReturnRows(sqlmock.NewRows([]string{"aprendiz_id"}))

	w := deleteAprendizRequest(t, "99999999")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown document, got %d", w.Code)
	}
}
