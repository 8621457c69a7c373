package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"recipebox/internal/auth"
)

const (
	defaultPageSize = 6
	maxPageSize     = 24
)

// currentUserID reads the authenticated user's id from the JWT put on the
// context by the echo-jwt middleware.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims.UserID, nil
}

// pagination reads the p (page) and ps (page size) query params. Page size
// defaults to 6 and is capped at 24.
func pagination(c echo.Context) (limit, offset int) {
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("p")); err == nil && v > 0 {
		page = v
	}
	size := defaultPageSize
	if v, err := strconv.Atoi(c.QueryParam("ps")); err == nil && v > 0 {
		size = v
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, (page - 1) * size
}

// pathID parses the numeric :id path param.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
