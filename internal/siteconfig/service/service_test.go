package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"servant_backend/internal/adapters/storage"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/internal/siteconfig/transport"
	"servant_backend/platform/apperr"
	"servant_backend/platform/logger"
)

type fakeStorage struct {
	signErr error
	deleted []string
}

func (f *fakeStorage) GenerateUploadURL(_ context.Context, _, folder, fileName, _ string, _ int64) (*storage.PresignedURL, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	key := folder + "/" + fileName
	return &storage.PresignedURL{URL: "https://minio.example.com/upload/" + key, FileKey: key, ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

func (f *fakeStorage) GenerateDownloadURL(_ context.Context, _, fileKey string) (*storage.PresignedURL, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	return &storage.PresignedURL{URL: "https://minio.example.com/get/" + fileKey}, nil
}

func (f *fakeStorage) ReadObject(context.Context, string, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) WriteObject(context.Context, string, string, string, io.Reader, int64) error {
	return nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, fileKey string) error {
	f.deleted = append(f.deleted, fileKey)
	return nil
}

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }
func (f *fakeStorage) IsNotFound(error) bool                            { return false }
func (f *fakeStorage) ValidateContentType(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("content type not allowed")
	}
	return nil
}
func (f *fakeStorage) ValidateFileSize(sizeBytes int64) error {
	if sizeBytes > 1<<20 {
		return errors.New("file too large")
	}
	return nil
}
func (f *fakeStorage) Ping(context.Context) error { return nil }

func newTestService(objStorage *fakeStorage) *Service {
	return NewService(store.NewMemoryStore(), objStorage, "gallery-images", logger.New("test"))
}

func TestUpdateBusiness_RequiresName(t *testing.T) {
	svc := newTestService(&fakeStorage{})

	err := svc.UpdateBusiness(context.Background(), transport.BusinessInfo{Name: "  "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMenu_AssignsMissingIDsAndKeepsExisting(t *testing.T) {
	svc := newTestService(&fakeStorage{})

	menu, err := svc.UpdateMenu(context.Background(), transport.MenuConfig{
		Items: []transport.MenuItem{
			{Name: "Braised Short Rib"},
			{ID: "item-1", Name: "Garden Salad"},
		},
		Presets: []transport.PresetMeal{{Name: "Classic Dinner"}},
	})
	if err != nil {
		t.Fatalf("update menu: %v", err)
	}

	if menu.Items[0].ID == "" {
		t.Error("expected generated id for new item")
	}
	if menu.Items[1].ID != "item-1" {
		t.Errorf("existing id must stay stable, got %q", menu.Items[1].ID)
	}
	if menu.Presets[0].ID == "" {
		t.Error("expected generated id for new preset")
	}
}

func TestUpdateMenu_RejectsDuplicateIDs(t *testing.T) {
	svc := newTestService(&fakeStorage{})

	_, err := svc.UpdateMenu(context.Background(), transport.MenuConfig{
		Items: []transport.MenuItem{
			{ID: "item-1", Name: "A"},
			{ID: "item-1", Name: "B"},
		},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGallery_RoundTripWithPresignedURLs(t *testing.T) {
	svc := newTestService(&fakeStorage{})
	ctx := context.Background()

	if _, err := svc.AddGalleryImage(ctx, "gallery/wedding.jpg", "Spring wedding"); err != nil {
		t.Fatalf("add image: %v", err)
	}

	gallery, err := svc.Gallery(ctx)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if len(gallery.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(gallery.Images))
	}
	if gallery.Images[0].URL != "https://minio.example.com/get/gallery/wedding.jpg" {
		t.Fatalf("expected presigned url, got %q", gallery.Images[0].URL)
	}
}

func TestAddGalleryImage_DuplicateKeyConflicts(t *testing.T) {
	svc := newTestService(&fakeStorage{})
	ctx := context.Background()

	if _, err := svc.AddGalleryImage(ctx, "gallery/a.jpg", ""); err != nil {
		t.Fatalf("add image: %v", err)
	}
	_, err := svc.AddGalleryImage(ctx, "gallery/a.jpg", "")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteGalleryImage_RemovesDocumentEntryAndObject(t *testing.T) {
	objStorage := &fakeStorage{}
	svc := newTestService(objStorage)
	ctx := context.Background()

	if _, err := svc.AddGalleryImage(ctx, "gallery/a.jpg", ""); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if err := svc.DeleteGalleryImage(ctx, "gallery/a.jpg"); err != nil {
		t.Fatalf("delete image: %v", err)
	}

	gallery, err := svc.Gallery(ctx)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if len(gallery.Images) != 0 {
		t.Fatalf("expected empty gallery, got %d images", len(gallery.Images))
	}
	if len(objStorage.deleted) != 1 || objStorage.deleted[0] != "gallery/a.jpg" {
		t.Fatalf("expected stored object deleted, got %v", objStorage.deleted)
	}
}

func TestDeleteGalleryImage_UnknownKeyNotFound(t *testing.T) {
	svc := newTestService(&fakeStorage{})

	err := svc.DeleteGalleryImage(context.Background(), "gallery/missing.jpg")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateGalleryUploadURL_ValidatesContentType(t *testing.T) {
	svc := newTestService(&fakeStorage{})

	_, err := svc.CreateGalleryUploadURL(context.Background(), "resume.pdf", "application/pdf", 1024)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
