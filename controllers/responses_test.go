package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return w, body
}

func TestRespondValidationErrors(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		respondValidationErrors(c, map[string]string{
			"fecha": "Formato de fecha invalido (AAAA-MM-DD)",
		})
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if body["success"] != false {
		t.Error("expected success:false")
	}
	fields, ok := body["errors"].(map[string]interface{})
	if !ok || fields["fecha"] != "Formato de fecha invalido (AAAA-MM-DD)" {
		t.Errorf("expected field→message map, got %v", body["errors"])
	}
}

func TestRespondNotFound(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		respondNotFound(c, "Caso not found")
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if body["error"] != "Caso not found" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestRespondServerErrorHidesDetail(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		respondServerError(c, "test op", gorm.ErrInvalidDB)
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body["error"] == gorm.ErrInvalidDB.Error() {
		t.Error("raw error must not leak without APP_DEBUG")
	}
}

func TestRespondServerErrorDebugExposesDetail(t *testing.T) {
	t.Setenv("APP_DEBUG", "true")

	_, body := record(t, func(c *gin.Context) {
		respondServerError(c, "test op", gorm.ErrInvalidDB)
	})

	if body["error"] != gorm.ErrInvalidDB.Error() {
		t.Errorf("expected raw error with APP_DEBUG=true, got %v", body["error"])
	}
}
