package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/logging"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/auth"
	"github.com/davidmr019/cafeteria_backend/internal/mykafka"
	"github.com/davidmr019/cafeteria_backend/internal/util"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func pageParams(c echo.Context) (offset, limit int) {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return util.Calculate(page, size)
}

// guard runs the access policy before any handler touches a service.
func guard(c echo.Context, op authz.Operation, res authz.Resource) error {
	p := auth.PrincipalFrom(c)
	ok, reason := authz.Authorize(p, op, res)
	if ok {
		return nil
	}
	if reason == authz.ReasonUnauthenticated {
		return echo.NewHTTPError(http.StatusUnauthorized, string(reason))
	}
	return echo.NewHTTPError(http.StatusForbidden, string(reason))
}

func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
