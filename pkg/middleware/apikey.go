package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const HeaderAPIKey = "X-Api-Key"

// WriteGuard rejects state-changing requests that do not carry key in the
// X-Api-Key header or as a bearer token. An empty key disables the check.
func WriteGuard(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" || isRead(c.Request().Method) {
				return next(c)
			}
			got := c.Request().Header.Get(HeaderAPIKey)
			if got == "" {
				got = strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid api key"})
			}
			return next(c)
		}
	}
}

func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
