package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/access"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
	LocalTokenID   = "token_id"
	LocalTokenExp  = "token_exp"
)

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados (logout) y carga
// UserID, CompanyID, Role y jti en c.Locals. revoker puede ser nil.
func AuthMiddleware(jwtSecret string, revoker ports.TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.ParseClaims(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		if revoker != nil && claims.ID != "" {
			revoked, err := revoker.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return writeError(c, err)
			}
			if revoked {
				return fail(c, fiber.StatusUnauthorized, "REVOKED_TOKEN", "token revocado")
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalTokenID, claims.ID)
		c.Locals(LocalTokenExp, claims.ExpiresAtTime())
		return c.Next()
	}
}

// UserLookup lectura del usuario actual (repository.UserRepository lo cumple).
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// ActiveUser va después de AuthMiddleware: rechaza usuarios borrados o inactivos y reemplaza
// el rol del token por el rol vigente, así un cambio en /api/users aplica sin esperar la expiración.
func ActiveUser(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := users.GetByID(c.UserContext(), GetUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		if u == nil || u.CompanyID != GetCompanyID(c) {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "el usuario ya no existe")
		}
		if !u.IsActive() {
			return fail(c, fiber.StatusUnauthorized, "USER_INACTIVE", "usuario inactivo")
		}
		c.Locals(LocalRole, u.Role)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Token sin rol -> 401 MISSING_ROLE.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "el rol '"+role+"' no tiene acceso a este recurso")
	}
}

// RequirePermission consulta la matriz rol × módulo × acción; la acción sale del método HTTP.
func RequirePermission(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		if !access.Allowed(role, module, actionFor(c.Method())) {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "sin permiso sobre el módulo '"+module+"'")
		}
		return c.Next()
	}
}

func actionFor(method string) string {
	switch method {
	case fiber.MethodPost:
		return access.ActionCreate
	case fiber.MethodPut, fiber.MethodPatch:
		return access.ActionEdit
	case fiber.MethodDelete:
		return access.ActionDelete
	}
	return access.ActionView
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func getTokenID(c *fiber.Ctx) string { return localString(c, LocalTokenID) }

func getTokenExp(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocalTokenExp).(time.Time)
	return t
}

// tenant devuelve el company_id o responde 401 si falta.
func tenant(c *fiber.Ctx) (string, bool) {
	id := GetCompanyID(c)
	if id == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
		return "", false
	}
	return id, true
}
