package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/config"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/auth"
	"github.com/davidmr019/cafeteria_backend/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newEcho() *echo.Echo {
	return echo.New()
}

func newContext(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func asCustomer(c echo.Context, id uint) {
	auth.SetPrincipal(c, &authz.Principal{ID: id, Role: models.RoleCustomer})
}

func asEmployee(c echo.Context, id uint) {
	auth.SetPrincipal(c, &authz.Principal{ID: id, Role: models.RoleEmployee})
}

func asAdmin(c echo.Context, id uint) {
	auth.SetPrincipal(c, &authz.Principal{ID: id, Role: models.RoleAdmin})
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Price:       price,
		Category:    "coffee",
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
