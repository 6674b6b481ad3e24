package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"campusmarket/internal/api"
	"campusmarket/internal/domain"
)

const (
	// The backend does not model location; every listing shows the campus.
	defaultLocation = "Campus UCC"
	// Placeholder when a product arrives without a category.
	uncategorized = "Sin categoría"
)

// Normalize maps backend product records into view-models, one per record,
// preserving backend order. Malformed optional fields fall back to defaults;
// this never fails.
func Normalize(raw []api.Product, origin string) []domain.Product {
	out := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeOne(r, origin))
	}
	return out
}

func normalizeOne(r api.Product, origin string) domain.Product {
	p := domain.Product{
		ID:          strconv.Itoa(r.ID),
		Title:       r.Name,
		Description: r.Description,
		Price:       r.Price,
		Condition:   normalizeCondition(r.Condition),
		CategoryID:  r.CategoryID,
		Category:    uncategorized,
		Location:    defaultLocation,
		Status:      r.Status,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
		IsFavorited: false,
		Tags:        []string{},
		Seller:      normalizeSeller(r),
	}
	if r.Category != nil && r.Category.Name != "" {
		p.Category = r.Category.Name
		if p.CategoryID == 0 {
			p.CategoryID = r.Category.ID
		}
	}
	if p.Status == "" {
		p.Status = "ACTIVE"
	}
	p.Images = make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		p.Images = append(p.Images, ResolveImageURL(img.ImageURL, origin))
	}
	return p
}

func normalizeCondition(raw string) string {
	if raw == "Nuevo" {
		return "new"
	}
	return "used"
}

func normalizeSeller(r api.Product) domain.Seller {
	return domain.Seller{
		ID:     r.UserID,
		Name:   sellerName(r.UserName),
		Avatar: AvatarFor(r.UserID),
		// Rating, phone verification and membership date are not part of the
		// product payload; they stay at their zero defaults.
	}
}

func sellerName(name string) string {
	if name == "" {
		return "Usuario desconocido"
	}
	return name
}

// ResolveImageURL turns a server-relative image path into an absolute URL by
// prefixing the backend origin. Already-absolute URLs pass through, which
// makes the rewrite idempotent.
func ResolveImageURL(ref, origin string) string {
	if ref == "" {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimRight(origin, "/") + ref
}

// AvatarFor derives a deterministic placeholder avatar from a stable user
// id: same id, same avatar, across calls and sessions.
func AvatarFor(userID string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(userID)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
