package domain

// WishlistItem is one entry in a user's wishlist. Items keep the order in
// which they were added; the id is unique within its owning wishlist only.
type WishlistItem struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
	URL       string `json:"url,omitempty"`
	Note      string `json:"note,omitempty"`
	AddedBy   string `json:"added_by,omitempty"`
	PledgedBy string `json:"pledged_by,omitempty"`
	Purchased bool   `json:"purchased"`
}

// DisplayName returns the item name, falling back to the URL when unnamed.
func (i *WishlistItem) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.URL
}

// Pledge is the display-safe projection of a wishlist item pledged by the
// acting user. It is derived on every read and never persisted.
type Pledge struct {
	Owner     string `json:"owner"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
	URL       string `json:"url,omitempty"`
	Note      string `json:"note,omitempty"`
	AddedBy   string `json:"added_by,omitempty"`
	Purchased bool   `json:"purchased"`
}

// NewPledge projects a wishlist item into a pledge under the given owner.
func NewPledge(owner string, item WishlistItem) Pledge {
	return Pledge{
		Owner:     owner,
		ID:        item.ID,
		Name:      item.DisplayName(),
		Price:     item.Price,
		Image:     item.Image,
		URL:       item.URL,
		Note:      item.Note,
		AddedBy:   item.AddedBy,
		Purchased: item.Purchased,
	}
}

// PledgeGroup collects one wishlist owner's items pledged by the acting user.
type PledgeGroup struct {
	Owner   string   `json:"owner"`
	Pledges []Pledge `json:"pledges"`
}
