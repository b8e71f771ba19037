package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/hash"
	"github.com/davidmr019/cafeteria_backend/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()
	passwordHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUsersMe(t *testing.T) {
	db := InitTestDB(t)
	h := &UserHandler{DB: db}
	me := seedUser(t, db, "regular", models.RoleCustomer)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodGet, "/users/me", nil)
	asCustomer(c, me.ID)
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, me.Username, fetched.Username)

	// The password hash never leaves the server.
	require.NotContains(t, rec.Body.String(), "password_hash")
}

func TestUsersGetStaffOnly(t *testing.T) {
	db := InitTestDB(t)
	h := &UserHandler{DB: db}
	target := seedUser(t, db, "target", models.RoleCustomer)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodGet, "/users/x", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(target.ID))
	asEmployee(c, 99)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, cCust := newContext(t, e, http.MethodGet, "/users/x", nil)
	cCust.SetParamNames("id")
	cCust.SetParamValues(itoa(target.ID))
	asCustomer(cCust, 50)
	requireHTTPError(t, h.Get(cCust), http.StatusForbidden)
}

func TestUsersUpdateSelf(t *testing.T) {
	db := InitTestDB(t)
	h := &UserHandler{DB: db}
	me := seedUser(t, db, "selfedit", models.RoleCustomer)
	e := newEcho()

	rec, c := newContext(t, e, http.MethodPut, "/users/x", map[string]any{
		"full_name": "Ana Pérez",
		"password":  "newpassword",
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(me.ID))
	asCustomer(c, me.ID)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, me.ID).Error)
	require.Equal(t, "Ana Pérez", stored.FullName)
	require.True(t, hash.CheckPassword(stored.PasswordHash, "newpassword"))
}

func TestUsersUpdateOthersAdminOnly(t *testing.T) {
	db := InitTestDB(t)
	h := &UserHandler{DB: db}
	target := seedUser(t, db, "target", models.RoleCustomer)
	e := newEcho()

	// Neither another customer nor an employee may edit someone else.
	_, cCust := newContext(t, e, http.MethodPut, "/users/x", map[string]any{"full_name": "x"})
	cCust.SetParamNames("id")
	cCust.SetParamValues(itoa(target.ID))
	asCustomer(cCust, target.ID+1)
	requireHTTPError(t, h.Update(cCust), http.StatusForbidden)

	_, cEmp := newContext(t, e, http.MethodPut, "/users/x", map[string]any{"full_name": "x"})
	cEmp.SetParamNames("id")
	cEmp.SetParamValues(itoa(target.ID))
	asEmployee(cEmp, target.ID+2)
	requireHTTPError(t, h.Update(cEmp), http.StatusForbidden)

	// Admin can, including deactivation.
	rec, cAdm := newContext(t, e, http.MethodPut, "/users/x", map[string]any{
		"is_active": false,
	})
	cAdm.SetParamNames("id")
	cAdm.SetParamValues(itoa(target.ID))
	asAdmin(cAdm, target.ID+3)
	require.NoError(t, h.Update(cAdm))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	require.False(t, stored.IsActive)
}

func TestUsersUpdateIsActiveIgnoredForSelf(t *testing.T) {
	db := InitTestDB(t)
	h := &UserHandler{DB: db}
	me := seedUser(t, db, "sneaky", models.RoleCustomer)
	e := newEcho()

	// A customer cannot reactivate or deactivate themselves.
	rec, c := newContext(t, e, http.MethodPut, "/users/x", map[string]any{
		"is_active": false,
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(me.ID))
	asCustomer(c, me.ID)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, me.ID).Error)
	require.True(t, stored.IsActive)
}
