package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/navigation"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// ModuleHandler menú de módulos y navegación.
type ModuleHandler struct {
	nav *navigation.Navigator
}

// NewModuleHandler construye el handler.
func NewModuleHandler(nav *navigation.Navigator) *ModuleHandler {
	return &ModuleHandler{nav: nav}
}

// Menu godoc
// @Summary      Módulos visibles para el rol actual
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) Menu(c *fiber.Ctx) error {
	state := h.nav.Menu(GetRole(c))
	items := make([]dto.ModuleItem, 0, len(state.Modules))
	for _, e := range state.Modules {
		items = append(items, dto.ModuleItem{ID: string(e.Module), Title: e.Title, Path: e.Path})
	}
	return c.JSON(dto.MenuResponse{Resolved: state.Resolved, Role: string(state.Role), Modules: items})
}

// Open godoc
// @Summary      Abrir un módulo
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Param        module  path  string  true  "ID del módulo"
// @Success      200  {object}  dto.NavigationEventResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/{module}/open [post]
func (h *ModuleHandler) Open(c *fiber.Ctx) error {
	ev, err := h.nav.Open(c.UserContext(), GetUserID(c), GetRole(c), entity.Module(c.Params("module")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NavigationEventResponse{Module: string(ev.Module), Path: ev.Path, OpenedAt: ev.OpenedAt})
}
