package api

// Wire shapes as the backend returns them. Normalization into view-models
// lives in internal/catalog.

type ProductImage struct {
	ID         int    `json:"id"`
	ProductID  int    `json:"productId"`
	ImageURL   string `json:"imageUrl"`
	IsPrimary  bool   `json:"isPrimary"`
	OrderIndex int    `json:"orderIndex"`
	CreatedAt  string `json:"createdAt"`
}

type ProductCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Category    *ProductCategory `json:"category"`
	CategoryID  int              `json:"categoryId"`
	UserID      string           `json:"userId"`
	UserName    string           `json:"userName"`
	Condition   string           `json:"condition"`
	Images      []ProductImage   `json:"images"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// Filters is the server-side query descriptor. Zero-valued fields are
// omitted from the query string entirely.
type Filters struct {
	Search     string
	CategoryID int
	MinPrice   float64
	MaxPrice   float64
	Status     string // ACTIVE | SOLD | INACTIVE
	SortBy     string // price | createdAt | views
	SortOrder  string // ASC | DESC
	Limit      int
}

type AuthUser struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	PhoneVerified     bool   `json:"phoneVerified"`
	CreatedAt         string `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  int      `json:"categoryId"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"imageUrls"`
	ImageOrder  []int    `json:"imageOrder,omitempty"`
}

type UploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
