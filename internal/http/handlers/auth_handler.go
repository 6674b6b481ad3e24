package handlers

import (
	"errors"
	"time"

	"campusmarket/internal/api"
	"campusmarket/internal/log"
	"campusmarket/internal/session"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Sessions *session.Service
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// authErrMessage surfaces the backend's message verbatim where available,
// with a connectivity-specific fallback.
func authErrMessage(err error) string {
	var unreach *api.UnreachableError
	if errors.As(err, &unreach) {
		return "No se puede conectar al servidor. Intenta de nuevo."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return "No se pudo completar la operación. Intenta de nuevo."
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok || !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Correo o contraseña inválidos", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Sessions.Login(c.Context(), sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": authErrMessage(err), "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name := c.FormValue("name")
	email := c.FormValue("email")
	pass := c.FormValue("password")

	if _, ok := validate.Name(name); !ok {
		return c.Status(400).Render("register", fiber.Map{"Err": "Ingresa tu nombre", "CSRFToken": c.Cookies("csrf_")})
	}
	if _, ok := validate.InstitutionalEmail(email); !ok {
		log.Security(c, "auth.register.fail", map[string]any{"email": email, "reason": "bad_domain"})
		return c.Status(400).Render("register", fiber.Map{"Err": "Usa tu correo institucional", "CSRFToken": c.Cookies("csrf_")})
	}
	if !validate.Password(pass) {
		return c.Status(400).Render("register", fiber.Map{"Err": "La contraseña debe tener al menos 8 caracteres", "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Sessions.Register(c.Context(), sid, name, email, pass)
	if err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"email": email})
		return c.Status(400).Render("register", fiber.Map{"Err": authErrMessage(err), "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Sessions.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
