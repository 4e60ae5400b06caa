package http

import (
	"net/http"
	"strings"

	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// claimsContextKey is where Authenticate stores the verified claims on the
// echo context.
const claimsContextKey = "auth.claims"

// AuthMiddleware guards routes with JWT bearer-token authentication.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates middleware verifying tokens with the given service.
func NewAuthMiddleware(tokens auth.TokenService) AuthMiddleware {
	return AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// header and stores the token claims on the context for handlers.
func (m AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Missing bearer token",
			})
		}

		claims, err := m.tokens.VerifyToken(token)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		ctx.Set(claimsContextKey, claims)
		return next(ctx)
	}
}

// RequireAdmin allows only admin accounts through. Must run after Authenticate.
func (m AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, ok := claimsFrom(ctx)
		if !ok || claims.Role != "admin" {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Admin access required",
			})
		}

		return next(ctx)
	}
}

// claimsFrom retrieves the claims stored by Authenticate.
func claimsFrom(ctx echo.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Get(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// canActFor reports whether the authenticated account may act on the given
// partner's resources: admins always, partners only for themselves.
func canActFor(ctx echo.Context, partnerID string) bool {
	claims, ok := claimsFrom(ctx)
	if !ok {
		return false
	}

	return claims.Role == "admin" || claims.PartnerID == partnerID
}
