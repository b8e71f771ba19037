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

type OfferHandler struct {
	DB *gorm.DB
}

type OfferUpdate struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	DiscountPercentage *float64   `json:"discount_percentage"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	MenuItemID         *uint      `json:"menu_item_id"`
}

// ListActive returns offers whose window contains the current time.
// Offers are reference data only; they do not change order pricing.
func (h *OfferHandler) ListActive(c echo.Context) error {
	offset, limit := pageParams(c)
	now := time.Now().UTC()

	var offers []models.Offer
	if err := h.DB.
		Where("start_date <= ? AND end_date >= ?", now, now).
		Offset(offset).Limit(limit).
		Find(&offers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) ListAll(c echo.Context) error {
	if err := guard(c, authz.OpListAllOffers, authz.Resource{}); err != nil {
		return err
	}

	offset, limit := pageParams(c)
	var offers []models.Offer
	if err := h.DB.Offset(offset).Limit(limit).Find(&offers).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) Create(c echo.Context) error {
	if err := guard(c, authz.OpManageOffers, authz.Resource{}); err != nil {
		return err
	}

	var req struct {
		Name               string     `json:"name"`
		Description        string     `json:"description"`
		DiscountPercentage float64    `json:"discount_percentage"`
		StartDate          *time.Time `json:"start_date"`
		EndDate            time.Time  `json:"end_date"`
		MenuItemID         *uint      `json:"menu_item_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "name and end_date are required")
	}
	if req.DiscountPercentage <= 0 || req.DiscountPercentage > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "discount_percentage must be in (0, 100]")
	}

	start := time.Now().UTC()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	offer := models.Offer{
		Name:               req.Name,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          start,
		EndDate:            req.EndDate,
		MenuItemID:         req.MenuItemID,
	}
	if err := h.DB.Create(&offer).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) Update(c echo.Context) error {
	if err := guard(c, authz.OpManageOffers, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req OfferUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var offer models.Offer
	if err := h.DB.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "offer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Name != nil {
		offer.Name = *req.Name
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.DiscountPercentage != nil {
		if *req.DiscountPercentage <= 0 || *req.DiscountPercentage > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "discount_percentage must be in (0, 100]")
		}
		offer.DiscountPercentage = *req.DiscountPercentage
	}
	if req.StartDate != nil {
		offer.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = *req.EndDate
	}
	if req.MenuItemID != nil {
		offer.MenuItemID = req.MenuItemID
	}

	if err := h.DB.Save(&offer).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) Delete(c echo.Context) error {
	if err := guard(c, authz.OpManageOffers, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.Offer{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "offer not found")
	}
	return c.NoContent(http.StatusNoContent)
}
