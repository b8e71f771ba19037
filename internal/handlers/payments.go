package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/metrics"
	"github.com/davidmr019/cafeteria_backend/internal/models"
	"github.com/davidmr019/cafeteria_backend/internal/mykafka"
	"github.com/davidmr019/cafeteria_backend/internal/service/payment"
)

type PaymentHandler struct {
	Service  *payment.Service
	Producer *mykafka.Producer
}

func paymentError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, payment.ErrValidation), errors.Is(err, payment.ErrInvalidMethod):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, payment.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	if err := guard(c, authz.OpInitiatePayment, authz.Resource{}); err != nil {
		return err
	}

	var req payment.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.Service.InitiatePayment(c.Request().Context(), req)
	if err != nil {
		metrics.RecordOperation("payment_initiate", false)
		return paymentError(err)
	}
	metrics.RecordOperation("payment_initiate", true)

	publish(c, h.Producer, "payment_events", itoa(p.ID), map[string]any{
		"type":      "payment_initiated",
		"paymentID": p.ID,
		"orderID":   p.OrderID,
		"method":    p.PaymentMethod,
		"amount":    p.Amount,
	})

	return c.JSON(http.StatusCreated, p)
}

// GetStatus is intentionally public: payment links are shared with
// customers who may not be logged in.
func (h *PaymentHandler) GetStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	p, err := h.Service.GetPayment(c.Request().Context(), id)
	if err != nil {
		return paymentError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) RecordCash(c echo.Context) error {
	if err := guard(c, authz.OpRecordCashPayment, authz.Resource{}); err != nil {
		return err
	}

	var req payment.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.Service.RecordCashPayment(c.Request().Context(), req)
	if err != nil {
		metrics.RecordOperation("payment_record_cash", false)
		return paymentError(err)
	}
	metrics.RecordOperation("payment_record_cash", true)

	publish(c, h.Producer, "payment_events", itoa(p.ID), map[string]any{
		"type":      "cash_payment_recorded",
		"paymentID": p.ID,
		"orderID":   p.OrderID,
		"amount":    p.Amount,
	})

	return c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	if err := guard(c, authz.OpUpdatePaymentStatus, authz.Resource{}); err != nil {
		return err
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status models.PaymentStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.Service.UpdatePaymentStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		metrics.RecordOperation("payment_status_update", false)
		return paymentError(err)
	}
	metrics.RecordOperation("payment_status_update", true)

	publish(c, h.Producer, "payment_events", itoa(p.ID), map[string]any{
		"type":      "payment_status_updated",
		"paymentID": p.ID,
		"status":    p.Status,
	})

	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) ListAll(c echo.Context) error {
	if err := guard(c, authz.OpListPayments, authz.Resource{}); err != nil {
		return err
	}

	var status *models.PaymentStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.PaymentStatus(raw)
		status = &s
	}
	var method *models.PaymentMethod
	if raw := c.QueryParam("method"); raw != "" {
		m := models.PaymentMethod(raw)
		method = &m
	}

	offset, limit := pageParams(c)
	payments, err := h.Service.ListPayments(c.Request().Context(), status, method, offset, limit)
	if err != nil {
		return paymentError(err)
	}
	return c.JSON(http.StatusOK, payments)
}
