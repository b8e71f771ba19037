package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/models"
)

func newMenuHandler(t *testing.T) (*MenuHandler, *gorm.DB) {
	db := InitTestDB(t)
	return &MenuHandler{DB: db}, db
}

func TestListAvailableHidesUnavailable(t *testing.T) {
	h, db := newMenuHandler(t)
	seedMenuItem(t, db, "Latte", 4.50, true)
	seedMenuItem(t, db, "Day-old croissant", 1.00, false)

	e := newEcho()
	rec, c := newContext(t, e, http.MethodGet, "/menu", nil)
	require.NoError(t, h.ListAvailable(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Latte", items[0].Name)
}

func TestGetMenuItem(t *testing.T) {
	h, db := newMenuHandler(t)
	latte := seedMenuItem(t, db, "Latte", 4.50, true)
	hidden := seedMenuItem(t, db, "Seasonal special", 6.00, false)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodGet, "/menu/x", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(latte.ID))
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Unavailable items look like they do not exist on the public surface.
	_, cHidden := newContext(t, e, http.MethodGet, "/menu/x", nil)
	cHidden.SetParamNames("id")
	cHidden.SetParamValues(itoa(hidden.ID))
	requireHTTPError(t, h.Get(cHidden), http.StatusNotFound)

	_, cMissing := newContext(t, e, http.MethodGet, "/menu/999", nil)
	cMissing.SetParamNames("id")
	cMissing.SetParamValues("999")
	requireHTTPError(t, h.Get(cMissing), http.StatusNotFound)
}

func TestListAllMenuStaffOnly(t *testing.T) {
	h, db := newMenuHandler(t)
	seedMenuItem(t, db, "Latte", 4.50, true)
	seedMenuItem(t, db, "Day-old croissant", 1.00, false)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodGet, "/admin/menu/all", nil)
	asEmployee(c, 7)
	require.NoError(t, h.ListAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	_, cCust := newContext(t, e, http.MethodGet, "/admin/menu/all", nil)
	asCustomer(cCust, 1)
	requireHTTPError(t, h.ListAll(cCust), http.StatusForbidden)
}

func TestCreateMenuItem(t *testing.T) {
	h, db := newMenuHandler(t)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodPost, "/admin/menu", map[string]any{
		"name":     "Flat white",
		"category": "coffee",
		"price":    4.00,
	})
	asAdmin(c, 9)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.IsAvailable)

	var count int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Price must be positive, name and category present.
	_, cBad := newContext(t, e, http.MethodPost, "/admin/menu", map[string]any{
		"name": "Free coffee", "category": "coffee", "price": 0,
	})
	asAdmin(cBad, 9)
	requireHTTPError(t, h.Create(cBad), http.StatusBadRequest)

	// Employees cannot create items.
	_, cEmp := newContext(t, e, http.MethodPost, "/admin/menu", map[string]any{
		"name": "Mocha", "category": "coffee", "price": 5.00,
	})
	asEmployee(cEmp, 7)
	requireHTTPError(t, h.Create(cEmp), http.StatusForbidden)
}

func TestUpdateMenuItemPartial(t *testing.T) {
	h, db := newMenuHandler(t)
	latte := seedMenuItem(t, db, "Latte", 4.50, true)
	e := newEcho()

	// Only price in the body: the rest must survive untouched.
	rec, c := newContext(t, e, http.MethodPut, "/admin/menu/x", map[string]any{
		"price": 5.00,
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(latte.ID))
	asAdmin(c, 9)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.MenuItem
	require.NoError(t, db.First(&stored, latte.ID).Error)
	require.Equal(t, "Latte", stored.Name)
	require.Equal(t, "coffee", stored.Category)
	require.InDelta(t, 5.00, stored.Price, 1e-9)
	require.True(t, stored.IsAvailable)

	_, cBad := newContext(t, e, http.MethodPut, "/admin/menu/x", map[string]any{
		"price": -1,
	})
	cBad.SetParamNames("id")
	cBad.SetParamValues(itoa(latte.ID))
	asAdmin(cBad, 9)
	requireHTTPError(t, h.Update(cBad), http.StatusBadRequest)
}

func TestUpdateAvailability(t *testing.T) {
	h, db := newMenuHandler(t)
	latte := seedMenuItem(t, db, "Latte", 4.50, true)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodPut, "/admin/menu/x/availability", map[string]any{
		"is_available": false,
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(latte.ID))
	asEmployee(c, 7)
	require.NoError(t, h.UpdateAvailability(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.MenuItem
	require.NoError(t, db.First(&stored, latte.ID).Error)
	require.False(t, stored.IsAvailable)

	// Body without the flag is rejected.
	_, cEmpty := newContext(t, e, http.MethodPut, "/admin/menu/x/availability", map[string]any{})
	cEmpty.SetParamNames("id")
	cEmpty.SetParamValues(itoa(latte.ID))
	asEmployee(cEmpty, 7)
	requireHTTPError(t, h.UpdateAvailability(cEmpty), http.StatusBadRequest)

	_, cCust := newContext(t, e, http.MethodPut, "/admin/menu/x/availability", map[string]any{
		"is_available": true,
	})
	cCust.SetParamNames("id")
	cCust.SetParamValues(itoa(latte.ID))
	asCustomer(cCust, 1)
	requireHTTPError(t, h.UpdateAvailability(cCust), http.StatusForbidden)
}

func TestDeleteMenuItem(t *testing.T) {
	h, db := newMenuHandler(t)
	latte := seedMenuItem(t, db, "Latte", 4.50, true)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodDelete, "/admin/menu/x", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(latte.ID))
	asAdmin(c, 9)
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&count).Error)
	require.Zero(t, count)

	_, cAgain := newContext(t, e, http.MethodDelete, "/admin/menu/x", nil)
	cAgain.SetParamNames("id")
	cAgain.SetParamValues(itoa(latte.ID))
	asAdmin(cAgain, 9)
	requireHTTPError(t, h.Delete(cAgain), http.StatusNotFound)
}
