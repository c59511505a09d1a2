package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/ecom_backend/internal/es"
	"github.com/vpetrenko/ecom_backend/internal/logging"
	"github.com/vpetrenko/ecom_backend/internal/service/search"
	"github.com/vpetrenko/ecom_backend/internal/util"
)

type SearchHandler struct {
	ES *elasticsearch.Client
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Query parameter q is required"})
	}
	if h.ES == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "Search is not available"})
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, items, err := search.Search(ctx, h.ES, es.ProductIndex, q, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("search failed", "query", q, "error", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Search error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}
