package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/navigation"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// RequireModule verifica que el rol del usuario tenga acceso al módulo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 MISSING_ROLE → el rol todavía no se resolvió.
//   - 403 FORBIDDEN    → el rol no incluye el módulo.
func RequireModule(module entity.Module, checker navigation.AccessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol del usuario no resuelto",
			})
		}
		if !checker.HasModuleAccess(role, module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + string(role) + "' no tiene acceso al módulo '" + string(module) + "'",
			})
		}
		return c.Next()
	}
}
