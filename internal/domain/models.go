package domain

import "time"

// Seller is a denormalized snapshot embedded in a Product: a read-only
// projection of whoever listed the item, never a live reference to a user
// record.
type Seller struct {
	ID            string
	Name          string
	Email         string
	Avatar        string
	Rating        float64
	PhoneVerified bool
	MemberSince   time.Time
}

// Product is the view-model every listing view renders. It is rebuilt from
// the backend on every fetch and never outlives its view.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Condition   string // new | used
	Category    string
	CategoryID  int
	Images      []string
	Tags        []string
	Seller      Seller
	Location    string
	Status      string // ACTIVE | SOLD | INACTIVE
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsFavorited bool
}

// Filters is the ephemeral client-side query descriptor. A zero field means
// "no constraint".
type Filters struct {
	CategoryID int
	PriceMin   float64
	PriceMax   float64
	Condition  string // new | used
	DatePosted string // today | week | month
	Location   string
}

// IsZero reports whether no constraint is set at all.
func (f Filters) IsZero() bool {
	return f.CategoryID == 0 && f.PriceMin == 0 && f.PriceMax == 0 &&
		f.Condition == "" && f.DatePosted == "" && f.Location == ""
}

type Category struct {
	ID   int
	Name string
}

// UploadedImage is a draft image during product creation. Order stays
// contiguous and zero-based across removals and reorders.
type UploadedImage struct {
	URL      string
	Filename string
	Order    int
}
