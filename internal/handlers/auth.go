package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vpetrenko/ecom_backend/internal/hash"
	"github.com/vpetrenko/ecom_backend/internal/logging"
	"github.com/vpetrenko/ecom_backend/internal/models"
	"github.com/vpetrenko/ecom_backend/internal/mykafka"
)

const tokenTTL = time.Hour

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	var user models.User
	if err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a wrong password, so a caller cannot
			// probe which emails exist.
			l.Warn("login failed", "reason", "unknown email")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		l.Error("login lookup failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login failed", "reason", "bad password", "user_id", user.ID)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		l.Error("token signing failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	publishEvent(c, h.Producer, "user_events", user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login ok", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}
