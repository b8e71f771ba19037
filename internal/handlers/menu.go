package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/logging"
	"github.com/davidmr019/cafeteria_backend/internal/models"
	"github.com/davidmr019/cafeteria_backend/internal/mykafka"
	"github.com/davidmr019/cafeteria_backend/internal/service/search"
)

type MenuHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

// MenuItemUpdate enumerates the fields an admin may change. Only fields
// present in the request body are applied.
type MenuItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
}

// ListAvailable is the public menu: available items only.
func (h *MenuHandler) ListAvailable(c echo.Context) error {
	offset, limit := pageParams(c)

	var items []models.MenuItem
	if err := h.DB.Where("is_available = ?", true).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil || !item.IsAvailable {
		return echo.NewHTTPError(http.StatusNotFound, "menu item not found or unavailable")
	}
	return c.JSON(http.StatusOK, item)
}

// ListAll lets staff see the full menu, unavailable items included.
func (h *MenuHandler) ListAll(c echo.Context) error {
	if err := guard(c, authz.OpListAllMenu, authz.Resource{}); err != nil {
		return err
	}

	offset, limit := pageParams(c)
	var items []models.MenuItem
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Create(c echo.Context) error {
	if err := guard(c, authz.OpManageMenu, authz.Resource{}); err != nil {
		return err
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		ImageURL    string  `json:"image_url"`
		IsAvailable *bool   `json:"is_available"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Category == "" || req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, category and a positive price are required")
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Create(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.reindex(c, item)
	publish(c, h.Producer, "menu_events", itoa(item.ID), map[string]any{
		"type":   "menu_item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})

	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) Update(c echo.Context) error {
	if err := guard(c, authz.OpManageMenu, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req MenuItemUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be > 0")
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.reindex(c, item)
	publish(c, h.Producer, "menu_events", itoa(item.ID), map[string]any{
		"type":   "menu_item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})

	return c.JSON(http.StatusOK, item)
}

// UpdateAvailability is the employee toggle; price and the rest stay
// admin-only.
func (h *MenuHandler) UpdateAvailability(c echo.Context) error {
	if err := guard(c, authz.OpToggleMenuAvailability, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req struct {
		IsAvailable *bool `json:"is_available" query:"is_available"`
	}
	if err := c.Bind(&req); err != nil || req.IsAvailable == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "is_available is required")
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	item.IsAvailable = *req.IsAvailable
	if err := h.DB.Save(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.reindex(c, item)
	publish(c, h.Producer, "menu_events", itoa(item.ID), map[string]any{
		"type":      "menu_item_availability",
		"itemID":    item.ID,
		"available": item.IsAvailable,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Delete(c echo.Context) error {
	if err := guard(c, authz.OpManageMenu, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
	}

	if h.ES != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := search.DeleteMenuItem(ctx, h.ES, h.ESIndex, id); err != nil {
			logging.FromContext(c.Request().Context()).Error("search index delete failed", "item_id", id, "error", err)
		}
	}
	publish(c, h.Producer, "menu_events", itoa(id), map[string]any{
		"type":   "menu_item_deleted",
		"itemID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

// reindex keeps the search index in sync best-effort; the catalog is the
// source of truth.
func (h *MenuHandler) reindex(c echo.Context, item models.MenuItem) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexMenuItem(ctx, h.ES, h.ESIndex, item); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index update failed", "item_id", item.ID, "error", err)
	}
}
