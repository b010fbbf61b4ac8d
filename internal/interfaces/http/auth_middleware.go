package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	"github.com/jhoicas/bananera-ledger/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID = "user_id"
	LocalSiteID = "site_id"
	LocalRole   = "role"
)

// Roles de la operación bananera.
const (
	RoleAdministrador   = "administrador"
	RoleGerente         = "gerente"
	RoleBodeguero       = "bodeguero"
	RoleContadorRRHH    = "contador_rrhh"
	RoleSupervisorFinca = "supervisor_finca"
)

// AuthMiddleware valida el Bearer Token JWT y deja user_id, site_id y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalSiteID, claims.SiteID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetSiteID devuelve la finca asignada del token, si la hay.
func GetSiteID(c *fiber.Ctx) string { return localString(c, LocalSiteID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// isSiteScoped indica si la petición queda limitada a la finca del token:
// roles de finca con finca asignada. Sin finca asignada ven todas.
func isSiteScoped(c *fiber.Ctx) bool {
	role := GetRole(c)
	return (role == RoleBodeguero || role == RoleSupervisorFinca) && GetSiteID(c) != ""
}

// scopedSiteID resuelve la finca efectiva de una consulta: los roles de finca
// quedan fijados a la del token, el resto usa la pedida (vacía = todas).
func scopedSiteID(c *fiber.Ctx, requested string) string {
	if isSiteScoped(c) {
		return GetSiteID(c)
	}
	return requested
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
