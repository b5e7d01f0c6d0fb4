package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"tnb-api/core/controller"
	"tnb-api/core/errors"
)

// Middleware bundles request middlewares shared across modules.
type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: []byte(jwtSecret)}
}

// AuthMiddleware guards admin routes with a bearer JWT issued by the admin
// login endpoint. On success the subject claim is stored under "admin_email".
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "authorization header required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "expected bearer token")
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return m.jwtSecret, nil
			})
			if err != nil || !token.Valid {
				if err != nil && strings.Contains(err.Error(), "expired") {
					return controller.NewErrorResponse(401, errors.ErrTokenExpired, "token expired")
				}
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid token")
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok {
					c.Set("admin_email", sub)
				}
			}

			return next(c)
		}
	}
}
