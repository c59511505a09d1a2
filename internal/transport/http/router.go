package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/ecom_backend/internal/handlers"
	authmw "github.com/vpetrenko/ecom_backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/login", d.AuthHandler.Login)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.SearchHandler.Search)
	api.GET("/products/:id", d.ProductHandler.GetProduct)

	protected := api.Group("", authmw.RequireLogin(d.JWTSecret))

	protected.POST("/products", d.ProductHandler.CreateProduct)
	protected.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	protected.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	protected.POST("/orders", d.OrderHandler.CreateOrder)
}
