package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vpetrenko/ecom_backend/internal/cache"
	"github.com/vpetrenko/ecom_backend/internal/es"
	"github.com/vpetrenko/ecom_backend/internal/logging"
	"github.com/vpetrenko/ecom_backend/internal/models"
	"github.com/vpetrenko/ecom_backend/internal/mykafka"
	"github.com/vpetrenko/ecom_backend/internal/service/search"
)

const (
	productListCacheKey = "products:all"
	placeholderImageURL = "https://via.placeholder.com/300"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Cache    *cache.Cache
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       uint    `json:"stock"`
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	var items []models.Product
	if ok, err := h.Cache.Get(ctx, productListCacheKey, &items); err != nil {
		l.Warn("cache read failed", "error", err)
	} else if ok {
		return c.JSON(http.StatusOK, items)
	}

	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		l.Error("listing products failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if err := h.Cache.Set(ctx, productListCacheKey, items); err != nil {
		l.Warn("cache write failed", "error", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product id"})
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		logging.FromContext(ctx).Error("fetching product failed", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Name == "" || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name and price are required"})
	}
	if req.ImageURL == "" {
		req.ImageURL = placeholderImageURL
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if err := h.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		l.Error("creating product failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	h.afterMutation(c, prod, false)
	publishEvent(c, h.Producer, "product_events", prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product id"})
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		l.Error("fetching product failed", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Name == "" || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name and price are required"})
	}
	if req.ImageURL == "" {
		req.ImageURL = placeholderImageURL
	}

	prod.Name = req.Name
	prod.Description = req.Description
	prod.Price = req.Price
	prod.ImageURL = req.ImageURL
	prod.Stock = req.Stock

	if err := h.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		l.Error("updating product failed", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	h.afterMutation(c, prod, false)
	publishEvent(c, h.Producer, "product_events", prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product id"})
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		l.Error("fetching product failed", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if err := h.DB.WithContext(ctx).Delete(&prod).Error; err != nil {
		l.Error("deleting product failed", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	h.afterMutation(c, prod, true)
	publishEvent(c, h.Producer, "product_events", prod.ID, map[string]any{
		"type":      "product_deleted",
		"productID": prod.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// afterMutation keeps the secondary stores in step with the row store:
// the cached listing is dropped and the search index updated. Both are
// best effort; the row store already committed.
func (h *ProductHandler) afterMutation(c echo.Context, prod models.Product, deleted bool) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	if err := h.Cache.Invalidate(ctx, productListCacheKey); err != nil {
		l.Warn("cache invalidation failed", "error", err)
	}

	if h.ES == nil {
		return
	}
	var err error
	if deleted {
		err = search.Remove(ctx, h.ES, es.ProductIndex, prod.ID)
	} else {
		err = search.Index(ctx, h.ES, es.ProductIndex, prod)
	}
	if err != nil {
		l.Warn("search index update failed", "product_id", prod.ID, "error", err)
	}
}
