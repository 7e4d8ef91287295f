package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Pos-api/internal/application/auth"
	"github.com/jhoicas/Pos-api/internal/application/dto"
)

const sseKeepAlive = 25 * time.Second

// AuthHandler maneja registro, login, logout y la sesión actual.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Description  El primer usuario de una tienda vacía queda como admin; los demás como cashier.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password y perfil"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	user, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token actual)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.SignOut(c.UserContext(), GetClaims(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Current(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(auth.ToUserResponse(user))
}

type sessionState struct {
	Resolved bool              `json:"resolved"`
	User     *dto.UserResponse `json:"user"`
}

// Events godoc
// @Summary      Cambios de sesión del usuario actual (Server-Sent Events)
// @Description  Emite el perfil vigente y cada cambio (rol actualizado, cierre de sesión). Termina al cerrar sesión.
// @Tags         auth
// @Security     Bearer
// @Produce      text/event-stream
// @Router       /api/auth/events [get]
func (h *AuthHandler) Events(c *fiber.Ctx) error {
	userID := GetUserID(c)
	user, err := h.uc.Current(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	cu := auth.NewCurrentUser(h.uc.Hub(), userID)
	cu.Resolve(user)
	updates, cancel := cu.Watch()

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cu.Close()
		defer cancel()
		ping := time.NewTicker(sseKeepAlive)
		defer ping.Stop()
		for {
			select {
			case st, ok := <-updates:
				if !ok {
					return
				}
				payload, _ := json.Marshal(sessionState{Resolved: st.Resolved, User: auth.ToUserResponse(st.User)})
				fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
				if st.Resolved && st.User == nil {
					return
				}
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					log.Debug().Str("user_id", userID).Msg("cliente SSE desconectado")
					return
				}
			}
		}
	}))
	return nil
}
