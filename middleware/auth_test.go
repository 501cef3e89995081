package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-management-api/config"
	"case-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useMockDB(t *testing.T) sqlmock.Sqlmock {
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

	orig := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = orig })

	return mock
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	AuthMiddleware()(c)
	return w, c
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w, _ := runAuth(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", w.Code)
	}
}

func TestAuthMiddlewareBadHeaderFormat(t *testing.T) {
	w, _ := runAuth(t, "Token abc123")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-Bearer header, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w, _ := runAuth(t, "Bearer not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", Claims{
		UserID: 1,
		RoleID: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	w, _ := runAuth(t, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "otro-secreto", Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w, _ := runAuth(t, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong signing key, got %d", w.Code)
	}
}

func TestAuthMiddlewareActiveUserPasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	mock := useMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM `users`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "nombre", "email", "password", "role_id", "is_active"}).
			AddRow(7, "Ana", "ana@example.com", "hash", models.RoleCoordinador, true))

	signed := signToken(t, "test-secret", Claims{
		UserID: 7,
		Email:  "ana@example.com",
		RoleID: models.RoleCoordinador,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w, c := runAuth(t, "Bearer "+signed)
	if w.Code == http.StatusUnauthorized {
		t.Fatalf("expected middleware to pass, got 401: %s", w.Body.String())
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	if userID != 7 || roleID != models.RoleCoordinador {
		t.Errorf("expected context userID=7 roleID=%d, got %v/%v",
			models.RoleCoordinador, userID, roleID)
	}
}

func TestAuthMiddlewareDeactivatedUserRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	mock := useMockDB(t)

	// The active-and-not-deleted predicate matches no row
	mock.ExpectQuery("SELECT .+ FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	signed := signToken(t, "test-secret", Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w, _ := runAuth(t, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deactivated account, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(roleID interface{}, allowed ...int) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if roleID != nil {
			c.Set("roleID", roleID)
		}
		RequireRole(allowed...)(c)
		return w
	}

	if w := run(models.RoleAdmin, models.RoleAdmin, models.RoleCoordinador); w.Code == http.StatusForbidden {
		t.Error("admin must pass an admin/coordinador gate")
	}
	if w := run(models.RoleAuxiliar, models.RoleAdmin, models.RoleCoordinador); w.Code != http.StatusForbidden {
		t.Errorf("auxiliar must be rejected, got %d", w.Code)
	}
	if w := run(nil, models.RoleAdmin); w.Code != http.StatusForbidden {
		t.Errorf("missing role context must be rejected, got %d", w.Code)
	}
}
