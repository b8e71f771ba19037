package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/hash"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/auth"
	"github.com/davidmr019/cafeteria_backend/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

type UserUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

func (h *UserHandler) Me(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, string(authz.ReasonUnauthenticated))
	}

	var user models.User
	if err := h.DB.First(&user, p.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Get(c echo.Context) error {
	if err := guard(c, authz.OpGetUser, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// Update lets a user edit their own profile; only admins may edit others
// or flip is_active.
func (h *UserHandler) Update(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, string(authz.ReasonUnauthenticated))
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if p.ID != id && p.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, string(authz.ReasonNotOwner))
	}

	var req UserUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		passwordHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user.PasswordHash = passwordHash
	}
	if req.IsActive != nil && p.Role == models.RoleAdmin {
		user.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email already in use")
	}
	return c.JSON(http.StatusOK, user)
}
