package transport

import pricingtransport "servant_backend/internal/pricing/transport"

// BusinessInfo is the public-facing business profile shown on the site.
type BusinessInfo struct {
	Name         string            `json:"name"`
	Tagline      string            `json:"tagline,omitempty"`
	About        string            `json:"about,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Email        string            `json:"email,omitempty"`
	Address      string            `json:"address,omitempty"`
	ServiceArea  string            `json:"serviceArea,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	HeroImageURL string            `json:"heroImageUrl,omitempty"`
}

// MenuCategory groups menu items for display.
type MenuCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MenuItem is a single dish clients can pick for a custom meal.
type MenuItem struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	CategoryID     string                  `json:"categoryId,omitempty"`
	PricePerPerson pricingtransport.Amount `json:"pricePerPerson"`
	IsAvailable    bool                    `json:"isAvailable"`
	ImageURL       string                  `json:"imageUrl,omitempty"`
}

// PresetMeal is a curated bundle with its own authoritative per-person rate.
// The listed item ids are descriptive; they never feed the price.
type PresetMeal struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	ItemIDs        []string                `json:"itemIds,omitempty"`
	PricePerPerson pricingtransport.Amount `json:"pricePerPerson"`
	ImageURL       string                  `json:"imageUrl,omitempty"`
}

// MenuConfig is the full catering menu document.
type MenuConfig struct {
	Categories []MenuCategory `json:"categories"`
	Items      []MenuItem     `json:"items"`
	Presets    []PresetMeal   `json:"presetMeals"`
}

// GalleryImage is one image in the public gallery.
type GalleryImage struct {
	Key     string `json:"key"`
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// GalleryConfig lists the gallery images in display order.
type GalleryConfig struct {
	Images []GalleryImage `json:"images"`
}

// SpecialtyImages maps specialty dish names to their showcase image keys.
type SpecialtyImages struct {
	Images map[string]string `json:"images"`
}

// GalleryUploadRequest asks for a presigned upload URL for a new image.
type GalleryUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// AddGalleryImageRequest records a completed upload in the gallery.
type AddGalleryImageRequest struct {
	Key     string `json:"key" validate:"required"`
	Caption string `json:"caption"`
}
