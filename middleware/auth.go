package middleware

import (
	"strings"

	"github.com/Triaksa-Space/be-landing-cms/pkg/apperrors"
	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and stores user_id and role_id in
// the echo context for downstream handlers.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeTokenMissing, "Missing or invalid token",
				))
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if len(strings.Split(tokenString, ".")) != 3 {
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeTokenMalformed, "Malformed token",
				))
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Get().Debug("Rejected token", logger.Err(err))
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeTokenInvalid, "Invalid or expired token",
				))
			}

			userID, ok := numericClaim(claims, "user_id")
			if !ok || userID <= 0 {
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeTokenInvalid, "Invalid token claims",
				))
			}
			roleID, _ := numericClaim(claims, "role_id")

			c.Set("user_id", userID)
			c.Set("role_id", roleID)

			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithUserIDContext(req.Context(), userID)))

			return next(c)
		}
	}
}

// ActorID returns the authenticated user id set by JWTMiddleware.
func ActorID(c echo.Context) (int64, bool) {
	userID, ok := c.Get("user_id").(int64)
	return userID, ok && userID > 0
}

func numericClaim(claims jwt.MapClaims, name string) (int64, bool) {
	v, ok := claims[name].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}
