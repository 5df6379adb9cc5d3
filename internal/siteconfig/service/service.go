package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"servant_backend/internal/adapters/storage"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/internal/siteconfig/transport"
	"servant_backend/platform/apperr"
	"servant_backend/platform/logger"
)

const galleryFolder = "gallery"

// Service manages the site's editable content: business profile, menu,
// gallery, and specialty images. Documents live in the config store; gallery
// binaries live in their own bucket.
type Service struct {
	store         store.DocumentStore
	storage       storage.StorageService
	galleryBucket string
	log           *logger.Logger
}

// NewService creates the site configuration service.
func NewService(docs store.DocumentStore, objStorage storage.StorageService, galleryBucket string, log *logger.Logger) *Service {
	return &Service{
		store:         docs,
		storage:       objStorage,
		galleryBucket: galleryBucket,
		log:           log,
	}
}

// Business returns the business profile, or an empty profile if none has
// been saved yet.
func (s *Service) Business(ctx context.Context) (transport.BusinessInfo, error) {
	var info transport.BusinessInfo
	if _, err := s.store.Load(ctx, store.DocBusiness, &info); err != nil {
		return transport.BusinessInfo{}, apperr.Wrap(apperr.KindUnavailable, "failed to load business info", err)
	}
	return info, nil
}

// UpdateBusiness replaces the business profile.
func (s *Service) UpdateBusiness(ctx context.Context, info transport.BusinessInfo) error {
	if strings.TrimSpace(info.Name) == "" {
		return apperr.Validation("business name is required")
	}
	if err := s.store.Save(ctx, store.DocBusiness, info); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to save business info", err)
	}
	return nil
}

// Menu returns the catering menu, empty if none has been saved yet.
func (s *Service) Menu(ctx context.Context) (transport.MenuConfig, error) {
	menu := transport.MenuConfig{Items: []transport.MenuItem{}, Presets: []transport.PresetMeal{}}
	if _, err := s.store.Load(ctx, store.DocMenu, &menu); err != nil {
		return transport.MenuConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to load menu", err)
	}
	if menu.Categories == nil {
		menu.Categories = []transport.MenuCategory{}
	}
	if menu.Items == nil {
		menu.Items = []transport.MenuItem{}
	}
	if menu.Presets == nil {
		menu.Presets = []transport.PresetMeal{}
	}
	return menu, nil
}

// UpdateMenu replaces the menu. Items and presets without an id get one
// assigned; existing ids are kept stable so bookings that reference them
// keep resolving.
func (s *Service) UpdateMenu(ctx context.Context, menu transport.MenuConfig) (transport.MenuConfig, error) {
	seen := make(map[string]bool)
	for i := range menu.Items {
		if menu.Items[i].ID == "" {
			menu.Items[i].ID = uuid.New().String()
		}
		if strings.TrimSpace(menu.Items[i].Name) == "" {
			return transport.MenuConfig{}, apperr.Validation("menu item name is required")
		}
		if seen[menu.Items[i].ID] {
			return transport.MenuConfig{}, apperr.Validation("duplicate menu item id: "+menu.Items[i].ID)
		}
		seen[menu.Items[i].ID] = true
	}
	for i := range menu.Presets {
		if menu.Presets[i].ID == "" {
			menu.Presets[i].ID = uuid.New().String()
		}
		if strings.TrimSpace(menu.Presets[i].Name) == "" {
			return transport.MenuConfig{}, apperr.Validation("preset meal name is required")
		}
		if seen[menu.Presets[i].ID] {
			return transport.MenuConfig{}, apperr.Validation("duplicate preset meal id: "+menu.Presets[i].ID)
		}
		seen[menu.Presets[i].ID] = true
	}
	if err := s.store.Save(ctx, store.DocMenu, menu); err != nil {
		return transport.MenuConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to save menu", err)
	}
	return menu, nil
}

// Gallery returns the gallery with fresh presigned download URLs. Images
// whose URL cannot be signed are returned without one.
func (s *Service) Gallery(ctx context.Context) (transport.GalleryConfig, error) {
	gallery := transport.GalleryConfig{Images: []transport.GalleryImage{}}
	if _, err := s.store.Load(ctx, store.DocGallery, &gallery); err != nil {
		return transport.GalleryConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to load gallery", err)
	}
	if gallery.Images == nil {
		gallery.Images = []transport.GalleryImage{}
	}
	for i := range gallery.Images {
		signed, err := s.storage.GenerateDownloadURL(ctx, s.galleryBucket, gallery.Images[i].Key)
		if err != nil {
			s.log.UpstreamError("storage", "presign gallery image", err)
			continue
		}
		gallery.Images[i].URL = signed.URL
	}
	return gallery, nil
}

// CreateGalleryUploadURL issues a presigned PUT for a new gallery image.
func (s *Service) CreateGalleryUploadURL(ctx context.Context, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, apperr.Validation("fileName is required")
	}
	if err := s.storage.ValidateContentType(contentType); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	if err := s.storage.ValidateFileSize(sizeBytes); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	signed, err := s.storage.GenerateUploadURL(ctx, s.galleryBucket, galleryFolder, fileName, contentType, sizeBytes)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to create upload URL", err)
	}
	return signed, nil
}

// AddGalleryImage records an uploaded image in the gallery document.
func (s *Service) AddGalleryImage(ctx context.Context, key, caption string) (transport.GalleryConfig, error) {
	if strings.TrimSpace(key) == "" {
		return transport.GalleryConfig{}, apperr.Validation("image key is required")
	}
	gallery := transport.GalleryConfig{Images: []transport.GalleryImage{}}
	if _, err := s.store.Load(ctx, store.DocGallery, &gallery); err != nil {
		return transport.GalleryConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to load gallery", err)
	}
	for _, img := range gallery.Images {
		if img.Key == key {
			return transport.GalleryConfig{}, apperr.Conflict("image already in gallery")
		}
	}
	gallery.Images = append(gallery.Images, transport.GalleryImage{Key: key, Caption: caption})
	if err := s.store.Save(ctx, store.DocGallery, gallery); err != nil {
		return transport.GalleryConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to save gallery", err)
	}
	return gallery, nil
}

// DeleteGalleryImage removes an image from the gallery document and deletes
// the stored object.
func (s *Service) DeleteGalleryImage(ctx context.Context, key string) error {
	gallery := transport.GalleryConfig{Images: []transport.GalleryImage{}}
	if _, err := s.store.Load(ctx, store.DocGallery, &gallery); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to load gallery", err)
	}
	kept := gallery.Images[:0]
	found := false
	for _, img := range gallery.Images {
		if img.Key == key {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return apperr.NotFound("gallery image not found")
	}
	gallery.Images = kept
	if err := s.store.Save(ctx, store.DocGallery, gallery); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to save gallery", err)
	}
	if err := s.storage.DeleteObject(ctx, s.galleryBucket, key); err != nil {
		s.log.UpstreamError("storage", "delete gallery image", err)
	}
	return nil
}

// SpecialtyImages returns the specialty image map, empty if unset.
func (s *Service) SpecialtyImages(ctx context.Context) (transport.SpecialtyImages, error) {
	images := transport.SpecialtyImages{Images: map[string]string{}}
	if _, err := s.store.Load(ctx, store.DocSpecialtyImages, &images); err != nil {
		return transport.SpecialtyImages{}, apperr.Wrap(apperr.KindUnavailable, "failed to load specialty images", err)
	}
	if images.Images == nil {
		images.Images = map[string]string{}
	}
	return images, nil
}

// UpdateSpecialtyImages replaces the specialty image map.
func (s *Service) UpdateSpecialtyImages(ctx context.Context, images transport.SpecialtyImages) error {
	if images.Images == nil {
		images.Images = map[string]string{}
	}
	if err := s.store.Save(ctx, store.DocSpecialtyImages, images); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to save specialty images", err)
	}
	return nil
}
