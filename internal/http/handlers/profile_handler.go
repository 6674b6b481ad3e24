package handlers

import (
	"bytes"
	"io"

	"campusmarket/internal/api"
	"campusmarket/internal/domain"
	applog "campusmarket/internal/log"
	"campusmarket/internal/session"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Backend  *api.Client
	Sessions *session.Service
}

func (h *ProfileHandler) View(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	return render(c, "profile", fiber.Map{"Profile": u})
}

// Update changes the display name and, when a file is attached, uploads a
// new profile image first and stores its URL. The form stays open with the
// error inline on any failure.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	tok, err := h.Sessions.Token(sid)
	if err != nil || tok == "" {
		return c.Redirect("/login")
	}

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).Render("profile", fiber.Map{
			"Profile": u, "Err": "Ingresa un nombre válido", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	req := api.UpdateProfileRequest{Name: name}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err == nil {
			content, rerr := io.ReadAll(f)
			f.Close()
			if rerr == nil {
				uploaded, uerr := h.Backend.UploadProfileImage(c.Context(), api.FileUpload{
					Filename: fh.Filename,
					Content:  bytes.NewReader(content),
				})
				if uerr != nil {
					applog.Error(c, "profile.image.upload.fail", uerr, nil)
					return c.Status(502).Render("profile", fiber.Map{
						"Profile": u, "Err": "No se pudo subir la imagen", "CSRFToken": c.Cookies("csrf_"),
					})
				}
				req.ProfileImage = uploaded.URL
			}
		}
	}

	if err := h.Backend.UpdateUserProfile(c.Context(), tok, u.ID, req); err != nil {
		applog.Error(c, "profile.update.fail", err, nil)
		return c.Status(502).Render("profile", fiber.Map{
			"Profile": u, "Err": "No se pudo actualizar el perfil", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	applog.Audit(c, "profile.update", map[string]any{"user": u.ID})
	return c.Redirect("/profile")
}
