package catalog

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage is the object store holding product images.
// Clients upload directly to it through presigned URLs.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for key and its expiry
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// ObjectExists reports whether key was uploaded
	ObjectExists(ctx context.Context, key string) (bool, error)
	// DeleteObject removes key
	DeleteObject(ctx context.Context, key string) error
	// PublicURL is the URL under which key is served to clients
	PublicURL(key string) string
	// KeyFromURL reverses PublicURL; ok is false for URLs of other origins
	KeyFromURL(url string) (key string, ok bool)
}

// imageExtensions lists the accepted image content types
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

const defaultUploadURLExpiry = 15 * time.Minute

// ProductImageService attaches uploaded images to products
type ProductImageService struct {
	productRepo     catalog.ProductRepository
	storage         ObjectStorage
	uploadURLExpiry time.Duration
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewProductImageService creates a new ProductImageService
func NewProductImageService(productRepo catalog.ProductRepository, storage ObjectStorage, logger *zap.Logger) *ProductImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImageService{
		productRepo:     productRepo,
		storage:         storage,
		uploadURLExpiry: defaultUploadURLExpiry,
		logger:          logger,
	}
}

// SetUploadURLExpiry sets how long upload URLs stay valid
func (s *ProductImageService) SetUploadURLExpiry(d time.Duration) {
	if d > 0 {
		s.uploadURLExpiry = d
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductImageService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RequestUpload reserves an object key under the product and returns a
// presigned URL the client uploads the image to.
func (s *ProductImageService) RequestUpload(ctx context.Context, actor identity.ActorContext, productID uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	ext, ok := imageExtensions[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, shared.NewValidationError("unsupported image type %q", req.ContentType)
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	key := path.Join(imageKeyPrefix(productID), uuid.NewString()+ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.uploadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ImageUploadResponse{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload points the product at an uploaded image and removes the
// image it replaces when that one lives in our storage.
func (s *ProductImageService) ConfirmUpload(ctx context.Context, actor identity.ActorContext, productID uuid.UUID, req ConfirmImageRequest) (*ProductResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.ObjectKey, imageKeyPrefix(productID)+"/") {
		return nil, shared.NewValidationError("object key does not belong to this product")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, req.ObjectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewValidationError("image has not been uploaded")
	}

	previous := product.Image
	product.SetImage(s.storage.PublicURL(req.ObjectKey))
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.deleteReplaced(ctx, previous, req.ObjectKey)

	s.publish(ctx, catalog.NewProductChangedEvent(product, catalog.ProductUpdated, 0))
	response := ToProductResponse(product)
	return &response, nil
}

// RemoveImage clears the product image
func (s *ProductImageService) RemoveImage(ctx context.Context, actor identity.ActorContext, productID uuid.UUID) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Image == "" {
		return nil
	}

	previous := product.Image
	product.SetImage("")
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	s.deleteReplaced(ctx, previous, "")
	s.publish(ctx, catalog.NewProductChangedEvent(product, catalog.ProductUpdated, 0))
	return nil
}

// deleteReplaced is best effort: an orphaned object only costs storage
func (s *ProductImageService) deleteReplaced(ctx context.Context, previousURL, currentKey string) {
	key, ok := s.storage.KeyFromURL(previousURL)
	if !ok || key == currentKey {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete replaced product image",
			zap.String("object_key", key),
			zap.Error(err),
		)
	}
}

func (s *ProductImageService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

func imageKeyPrefix(productID uuid.UUID) string {
	return "products/" + productID.String()
}
