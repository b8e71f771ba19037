package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/models"
)

// UpdatesHandler serves the daily news board (events, specials, notices).
type UpdatesHandler struct {
	DB *gorm.DB
}

type DailyUpdatePatch struct {
	Title             *string    `json:"title"`
	Content           *string    `json:"content"`
	Date              *time.Time `json:"date"`
	RelatedMenuItemID *uint      `json:"related_menu_item_id"`
}

func (h *UpdatesHandler) List(c echo.Context) error {
	offset, limit := pageParams(c)

	var updates []models.DailyUpdate
	if err := h.DB.Order("date DESC").Offset(offset).Limit(limit).Find(&updates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updates)
}

func (h *UpdatesHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var update models.DailyUpdate
	if err := h.DB.First(&update, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "daily update not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, update)
}

func (h *UpdatesHandler) Create(c echo.Context) error {
	if err := guard(c, authz.OpManageUpdates, authz.Resource{}); err != nil {
		return err
	}

	var req struct {
		Title             string     `json:"title"`
		Content           string     `json:"content"`
		Date              *time.Time `json:"date"`
		RelatedMenuItemID *uint      `json:"related_menu_item_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and content are required")
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != nil {
		date = *req.Date
	}

	update := models.DailyUpdate{
		Title:             req.Title,
		Content:           req.Content,
		Date:              date,
		RelatedMenuItemID: req.RelatedMenuItemID,
	}
	if err := h.DB.Create(&update).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, update)
}

func (h *UpdatesHandler) Update(c echo.Context) error {
	if err := guard(c, authz.OpManageUpdates, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req DailyUpdatePatch
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var update models.DailyUpdate
	if err := h.DB.First(&update, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "daily update not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Content != nil {
		update.Content = *req.Content
	}
	if req.Date != nil {
		update.Date = *req.Date
	}
	if req.RelatedMenuItemID != nil {
		update.RelatedMenuItemID = req.RelatedMenuItemID
	}

	if err := h.DB.Save(&update).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, update)
}

func (h *UpdatesHandler) Delete(c echo.Context) error {
	if err := guard(c, authz.OpManageUpdates, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.DailyUpdate{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "daily update not found")
	}
	return c.NoContent(http.StatusNoContent)
}
