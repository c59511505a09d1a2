package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/ecom_backend/internal/logging"
	"github.com/vpetrenko/ecom_backend/internal/mykafka"
)

const publishTimeout = 5 * time.Second

// publishEvent fires a domain event at kafka. A nil producer means
// eventing is not configured and the call is a no-op; a delivery
// failure is logged and never fails the request.
func publishEvent(c echo.Context, p *mykafka.Producer, topic string, key any, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
