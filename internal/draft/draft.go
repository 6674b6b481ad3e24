package draft

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"campusmarket/internal/api"
	"campusmarket/internal/domain"
)

// MaxImages caps the images a draft can hold.
const MaxImages = 10

// ErrTooManyImages is reported once when an add would push the draft past
// the cap; the existing image set is left untouched.
var ErrTooManyImages = errors.New("máximo 10 imágenes permitidas")

// State of the creation flow.
type State string

const (
	StateIdle       State = "idle"
	StateUploading  State = "uploading"
	StateReady      State = "ready"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Draft accumulates a product listing before submission. Images upload as
// soon as they are picked, not on submit; a failed submit keeps everything
// so the user retries without re-uploading.
type Draft struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	Condition   string
	Images      []domain.UploadedImage
	state       State
}

func New() *Draft { return &Draft{state: StateIdle} }

func (d *Draft) State() State { return d.state }

// File is a candidate upload from the form.
type File struct {
	Filename string
	MIME     string
	Content  []byte
}

// AcceptFiles drops non-image files silently and enforces the cap against
// existing plus incoming. On a cap violation nothing is added.
func (d *Draft) AcceptFiles(files []File) ([]File, error) {
	images := make([]File, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f.MIME, "image/") {
			images = append(images, f)
		}
	}
	if len(d.Images)+len(images) > MaxImages {
		return nil, ErrTooManyImages
	}
	return images, nil
}

// AddUploaded appends upload results with the next contiguous order values.
func (d *Draft) AddUploaded(results []api.UploadedFile) {
	base := len(d.Images)
	for i, r := range results {
		d.Images = append(d.Images, domain.UploadedImage{
			URL:      r.URL,
			Filename: r.Filename,
			Order:    base + i,
		})
	}
	d.state = StateReady
}

// RemoveImage drops the image at index and re-sequences order zero-based
// contiguous.
func (d *Draft) RemoveImage(index int) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	d.Images = append(d.Images[:index], d.Images[index+1:]...)
	d.resequence()
}

// MoveImage reorders an image from one position to another, keeping order
// contiguous.
func (d *Draft) MoveImage(from, to int) {
	n := len(d.Images)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	img := d.Images[from]
	rest := append(d.Images[:from:from], d.Images[from+1:]...)
	d.Images = append(rest[:to:to], append([]domain.UploadedImage{img}, rest[to:]...)...)
	d.resequence()
}

func (d *Draft) resequence() {
	for i := range d.Images {
		d.Images[i].Order = i
	}
}

// FieldErrors maps form field names to messages. Empty means submittable.
type FieldErrors map[string]string

// Validate applies the submit guard: at least one uploaded image, non-empty
// trimmed name and description, a parseable positive price, a category and a
// condition. The backend remains the final authority.
func (d *Draft) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(d.Images) == 0 {
		errs["images"] = "Debes subir al menos una imagen"
	}
	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "El nombre es obligatorio"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "La descripción es obligatoria"
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64); err != nil || price <= 0 {
		errs["price"] = "Ingresa un precio válido"
	}
	if _, err := strconv.Atoi(strings.TrimSpace(d.CategoryID)); err != nil {
		errs["categoryId"] = "Selecciona una categoría"
	}
	if d.Condition != "Nuevo" && d.Condition != "Usado" {
		errs["condition"] = "Selecciona el estado del producto"
	}
	if len(errs) > 0 {
		d.state = StateInvalid
		return errs
	}
	d.state = StateReady
	return nil
}

// Submit validates and creates the product. Success clears the draft so the
// caller can close the creation surface and refetch; failure preserves it.
func (d *Draft) Submit(ctx context.Context, backend *api.Client, token string) (api.Product, FieldErrors, error) {
	if errs := d.Validate(); errs != nil {
		return api.Product{}, errs, nil
	}
	d.state = StateSubmitting

	price, _ := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	categoryID, _ := strconv.Atoi(strings.TrimSpace(d.CategoryID))
	urls := make([]string, len(d.Images))
	order := make([]int, len(d.Images))
	for i, img := range d.Images {
		urls[i] = img.URL
		order[i] = img.Order
	}

	created, err := backend.CreateProduct(ctx, token, api.CreateProductRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		CategoryID:  categoryID,
		Condition:   d.Condition,
		ImageURLs:   urls,
		ImageOrder:  order,
	})
	if err != nil {
		d.state = StateFailed
		return api.Product{}, nil, err
	}
	*d = Draft{state: StateSuccess}
	return created, nil, nil
}
