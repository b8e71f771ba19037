package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/auth"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/metrics"
	"github.com/davidmr019/cafeteria_backend/internal/models"
	"github.com/davidmr019/cafeteria_backend/internal/mykafka"
	"github.com/davidmr019/cafeteria_backend/internal/service/order"
)

type OrderHandler struct {
	Service  *order.Service
	Producer *mykafka.Producer
}

func orderError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, order.ErrValidation), errors.Is(err, order.ErrUnavailable):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *OrderHandler) Create(c echo.Context) error {
	if err := guard(c, authz.OpCreateOrder, authz.Resource{}); err != nil {
		return err
	}
	p := auth.PrincipalFrom(c)

	var req order.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.Service.CreateOrder(c.Request().Context(), p.ID, req)
	if err != nil {
		metrics.RecordOperation("order_create", false)
		return orderError(err)
	}
	metrics.RecordOperation("order_create", true)

	publish(c, h.Producer, "order_events", itoa(created.ID), map[string]any{
		"type":       "order_created",
		"orderID":    created.ID,
		"customerID": created.CustomerID,
		"total":      created.TotalAmount,
	})

	return c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	if err := guard(c, authz.OpListOwnOrders, authz.Resource{}); err != nil {
		return err
	}
	p := auth.PrincipalFrom(c)

	offset, limit := pageParams(c)
	orders, err := h.Service.ListOrdersForCustomer(c.Request().Context(), p.ID, offset, limit)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	o, err := h.Service.GetOrder(c.Request().Context(), id)
	if err != nil {
		return orderError(err)
	}

	if err := guard(c, authz.OpGetOrder, authz.OwnedBy(o.CustomerID)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// ListAll serves the employee order board, newest first, optionally
// filtered by status.
func (h *OrderHandler) ListAll(c echo.Context) error {
	if err := guard(c, authz.OpListAllOrders, authz.Resource{}); err != nil {
		return err
	}

	var status *models.OrderStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.OrderStatus(raw)
		status = &s
	}

	offset, limit := pageParams(c)
	orders, err := h.Service.ListOrders(c.Request().Context(), status, offset, limit)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	if err := guard(c, authz.OpUpdateOrderStatus, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.Service.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		metrics.RecordOperation("order_status_update", false)
		return orderError(err)
	}
	metrics.RecordOperation("order_status_update", true)

	publish(c, h.Producer, "order_events", itoa(updated.ID), map[string]any{
		"type":    "order_status_updated",
		"orderID": updated.ID,
		"status":  updated.Status,
	})

	return c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	if err := guard(c, authz.OpDeleteOrder, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	deleted, err := h.Service.DeleteOrder(c.Request().Context(), id)
	if err != nil {
		return orderError(err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	publish(c, h.Producer, "order_events", itoa(id), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
