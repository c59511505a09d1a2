package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/ecom_backend/internal/models"
)

func TestCreateThenGetProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":        "Smartwatch",
		"description": "Track your fitness and stay connected",
		"price":       249.99,
		"image_url":   "https://example.com/watch.png",
		"stock":       45,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", payload)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedAt)

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/api/products/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(fmt.Sprint(created.ID))
	require.NoError(t, env.P.GetProduct(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	var fetched models.Product
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Smartwatch", fetched.Name)
	require.Equal(t, "Track your fitness and stay connected", fetched.Description)
	require.Equal(t, 249.99, fetched.Price)
	require.Equal(t, "https://example.com/watch.png", fetched.ImageURL)
	require.Equal(t, uint(45), fetched.Stock)
}

func TestCreateProductDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":  "Cable",
		"price": 4.99,
	})
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "", created.Description)
	require.Equal(t, placeholderImageURL, created.ImageURL)
	require.Equal(t, uint(0), created.Stock)
}

func TestCreateProductMissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []map[string]any{
		{"price": 9.99},
		{"name": "No price"},
		{"name": "", "price": 9.99},
	} {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/products", payload)
		require.NoError(t, env.P.CreateProduct(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"Name and price are required"}`, rec.Body.String())
	}

	var n int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "Laptop", Price: 1299.99, Stock: 30})

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{
		"name":        "Laptop Pro",
		"description": "Refreshed model",
		"price":       1499.99,
		"stock":       20,
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(prod.ID))
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, env.DB.First(&updated, prod.ID).Error)
	require.Equal(t, "Laptop Pro", updated.Name)
	require.Equal(t, "Refreshed model", updated.Description)
	require.Equal(t, 1499.99, updated.Price)
	require.Equal(t, uint(20), updated.Stock)
}

// A rejected update must leave the stored row untouched.
func TestUpdateProductMissingPrice(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "Laptop", Description: "Original", Price: 1299.99, Stock: 30})

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{
		"name": "Laptop Pro",
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(prod.ID))
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, prod.ID).Error)
	require.Equal(t, "Laptop", stored.Name)
	require.Equal(t, "Original", stored.Description)
	require.Equal(t, 1299.99, stored.Price)
	require.Equal(t, uint(30), stored.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/42", map[string]any{
		"name":  "Ghost",
		"price": 1.0,
	})
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductThenGet(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct(models.Product{Name: "Headphones", Price: 199.99})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(prod.ID))
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/api/products/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(fmt.Sprint(prod.ID))
	require.NoError(t, env.P.GetProduct(cGet))
	require.Equal(t, http.StatusNotFound, recGet.Code)
	require.JSONEq(t, `{"message":"Product not found"}`, recGet.Body.String())
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(models.Product{Name: "Smartphone", Price: 699.99})
	env.createProduct(models.Product{Name: "Laptop", Price: 1299.99})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "Smartphone", items[0].Name)
	require.Equal(t, "Laptop", items[1].Name)
}
