package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/ecom_backend/internal/logging"
	"github.com/vpetrenko/ecom_backend/internal/mykafka"
	"github.com/vpetrenko/ecom_backend/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req struct {
		UserID      uint                `json:"userId"`
		TotalAmount float64             `json:"totalAmount"`
		Items       []service.OrderLine `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	orderID, err := h.Svc.PlaceOrder(ctx, req.UserID, req.TotalAmount, req.Items)
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Order must contain at least one item"})
	case errors.Is(err, service.ErrOrderInsert):
		l.Error("order header insert failed", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error creating order"})
	case errors.Is(err, service.ErrItemInsert):
		l.Error("order item insert failed", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error adding order items"})
	case err != nil:
		l.Error("order placement failed", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	publishEvent(c, h.Producer, "order_events", req.UserID, map[string]any{
		"type":    "order_created",
		"orderID": orderID,
		"userID":  req.UserID,
		"total":   req.TotalAmount,
		"items":   len(req.Items),
	})

	l.Info("order created", "order_id", orderID, "user_id", req.UserID, "items", len(req.Items))
	return c.JSON(http.StatusCreated, echo.Map{
		"orderId": orderID,
		"message": "Order created successfully",
	})
}
