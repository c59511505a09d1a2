package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vpetrenko/ecom_backend/internal/hash"
	"github.com/vpetrenko/ecom_backend/internal/models"
	"github.com/vpetrenko/ecom_backend/internal/service"
)

var testJWTSecret = []byte("test_secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	A  *AuthHandler
	P  *ProductHandler
	O  *OrderHandler
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		A:  &AuthHandler{DB: db, JWTSecret: testJWTSecret},
		P:  &ProductHandler{DB: db},
		O:  &OrderHandler{Svc: &service.OrderService{DB: db}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(email, password, name string) models.User {
	passwordHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: passwordHash, Name: name}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) createProduct(p models.Product) models.Product {
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}
