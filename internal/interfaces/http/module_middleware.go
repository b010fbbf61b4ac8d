package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
)

// Módulos funcionales protegidos por rol.
const (
	ModuleInventario = "inventario"
	ModuleNomina     = "nomina"
)

// Acciones sobre un módulo.
const (
	ActionView = "view"
	ActionEdit = "edit"
)

type permission struct{ view, edit bool }

// modulePermissions matriz rol → permiso por módulo. Un rol ausente no tiene acceso.
var modulePermissions = map[string]map[string]permission{
	ModuleInventario: {
		RoleAdministrador:   {view: true, edit: true},
		RoleGerente:         {view: true},
		RoleSupervisorFinca: {view: true, edit: true},
		RoleBodeguero:       {view: true, edit: true},
	},
	ModuleNomina: {
		RoleAdministrador: {view: true, edit: true},
		RoleGerente:       {view: true},
		RoleContadorRRHH:  {view: true, edit: true},
	},
}

// CanAccess informa si el rol puede ejecutar la acción sobre el módulo.
func CanAccess(role, module, action string) bool {
	p, ok := modulePermissions[module][role]
	if !ok {
		return false
	}
	if action == ActionEdit {
		return p.edit
	}
	return p.view
}

// RequireModule verifica que el rol del token tenga la acción sobre el módulo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 → el token no trae rol.
//   - 403 → el rol no tiene ese permiso sobre el módulo.
func RequireModule(module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if !CanAccess(role, module, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no puede " + actionLabel(action) + " el módulo '" + module + "'",
			})
		}
		return c.Next()
	}
}

func actionLabel(action string) string {
	if action == ActionEdit {
		return "editar"
	}
	return "consultar"
}
