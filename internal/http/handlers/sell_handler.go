package handlers

import (
	"bytes"
	"io"
	"strconv"

	"campusmarket/internal/api"
	"campusmarket/internal/domain"
	"campusmarket/internal/draft"
	applog "campusmarket/internal/log"
	"campusmarket/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SellHandler drives the product creation flow. The draft lives in the form
// itself: text fields plus hidden inputs carrying already-uploaded image
// urls in order, so a failed submit loses nothing.
type SellHandler struct {
	Backend  *api.Client
	Sessions *session.Service
}

func (h *SellHandler) Form(c *fiber.Ctx) error {
	if c.Locals("user") == nil {
		return c.Redirect("/login")
	}
	categories, err := h.Backend.Categories(c.Context())
	if err != nil {
		applog.Error(c, "sell.categories.fail", err, nil)
	}
	return render(c, "sell", fiber.Map{"Categories": categories, "Draft": draft.New(), "Errors": draft.FieldErrors{}})
}

// draftFromForm rebuilds the draft aggregate from the posted form.
func draftFromForm(c *fiber.Ctx) *draft.Draft {
	d := draft.New()
	d.Name = c.FormValue("name")
	d.Description = c.FormValue("description")
	d.Price = c.FormValue("price")
	d.CategoryID = c.FormValue("categoryId")
	d.Condition = c.FormValue("condition")

	urls := c.Request().PostArgs().PeekMulti("imageUrl")
	names := c.Request().PostArgs().PeekMulti("imageName")
	for i, u := range urls {
		img := domain.UploadedImage{URL: string(u), Order: i}
		if i < len(names) {
			img.Filename = string(names[i])
		}
		d.Images = append(d.Images, img)
	}
	return d
}

func (h *SellHandler) renderForm(c *fiber.Ctx, d *draft.Draft, errs draft.FieldErrors, banner string, status int) error {
	categories, err := h.Backend.Categories(c.Context())
	if err != nil {
		applog.Error(c, "sell.categories.fail", err, nil)
	}
	return c.Status(status).Render("sell", fiber.Map{
		"Categories": categories,
		"Draft":      d,
		"Errors":     errs,
		"Err":        banner,
		"CSRFToken":  c.Cookies("csrf_"),
	})
}

// Upload accepts a batch of files, filters out non-images, enforces the
// ten-image cap and uploads immediately. The form comes back with the new
// images appended in contiguous order.
func (h *SellHandler) Upload(c *fiber.Ctx) error {
	if c.Locals("user") == nil {
		return c.Redirect("/login")
	}
	d := draftFromForm(c)

	form, err := c.MultipartForm()
	if err != nil {
		return h.renderForm(c, d, nil, "No se pudieron leer los archivos", fiber.StatusBadRequest)
	}
	var candidates []draft.File
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		candidates = append(candidates, draft.File{
			Filename: fh.Filename,
			MIME:     fh.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	accepted, err := d.AcceptFiles(candidates)
	if err != nil {
		applog.Security(c, "sell.upload.cap", map[string]any{"have": len(d.Images), "adding": len(candidates)})
		return h.renderForm(c, d, nil, "Máximo 10 imágenes permitidas", fiber.StatusBadRequest)
	}
	if len(accepted) > 0 {
		uploads := make([]api.FileUpload, len(accepted))
		for i, f := range accepted {
			uploads[i] = api.FileUpload{Filename: f.Filename, Content: bytes.NewReader(f.Content)}
		}
		results, err := h.Backend.UploadProductImages(c.Context(), uploads)
		if err != nil {
			applog.Error(c, "sell.upload.fail", err, nil)
			return h.renderForm(c, d, nil, "No se pudieron subir las imágenes", fiber.StatusBadGateway)
		}
		d.AddUploaded(results)
		applog.Audit(c, "sell.upload", map[string]any{"count": len(results)})
	}
	return h.renderForm(c, d, nil, "", fiber.StatusOK)
}

// RemoveImage drops one uploaded image from the draft; order re-sequences.
func (h *SellHandler) RemoveImage(c *fiber.Ctx) error {
	if c.Locals("user") == nil {
		return c.Redirect("/login")
	}
	d := draftFromForm(c)
	if idx, err := strconv.Atoi(c.FormValue("remove")); err == nil {
		d.RemoveImage(idx)
	}
	return h.renderForm(c, d, nil, "", fiber.StatusOK)
}

// Create validates the draft and submits it. Validation failures come back
// field-scoped with the draft intact; a backend failure keeps the draft so
// the user retries without re-uploading.
func (h *SellHandler) Create(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if c.Locals("user") == nil {
		return c.Redirect("/login")
	}
	tok, err := h.Sessions.Token(sid)
	if err != nil || tok == "" {
		return c.Redirect("/login")
	}

	d := draftFromForm(c)
	created, errs, err := d.Submit(c.Context(), h.Backend, tok)
	if errs != nil {
		return h.renderForm(c, d, errs, "", fiber.StatusBadRequest)
	}
	if err != nil {
		applog.Error(c, "sell.create.fail", err, nil)
		return h.renderForm(c, d, nil, "No se pudo publicar el producto. Intenta de nuevo.", fiber.StatusBadGateway)
	}

	applog.Audit(c, "sell.create", map[string]any{"product": created.ID})
	return c.Redirect("/my-products")
}
