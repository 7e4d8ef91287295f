package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/usecase"
)

// PreferenceHandler preferencias del usuario.
type PreferenceHandler struct {
	uc *usecase.PreferenceUseCase
}

func NewPreferenceHandler(uc *usecase.PreferenceUseCase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

// GetLanguage godoc
// @Summary      Idioma preferido
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LanguageResponse
// @Router       /api/preferences/language [get]
func (h *PreferenceHandler) GetLanguage(c *fiber.Ctx) error {
	lang, err := h.uc.Language(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LanguageResponse{Language: lang})
}

// SetLanguage godoc
// @Summary      Cambiar idioma preferido
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LanguageRequest  true  "Etiqueta BCP-47"
// @Success      200  {object}  dto.LanguageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/preferences/language [put]
func (h *PreferenceHandler) SetLanguage(c *fiber.Ctx) error {
	var in dto.LanguageRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	lang, err := h.uc.SetLanguage(c.UserContext(), GetUserID(c), in.Language)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LanguageResponse{Language: lang})
}
