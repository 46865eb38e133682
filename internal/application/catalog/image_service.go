package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorageService defines the object storage operations the catalog
// needs. Implemented by the S3 client and a stub for development.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for direct browser upload
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// ObjectExists reports whether the object was actually uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// imageContentTypes maps accepted upload content types to file extensions
var imageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

const uploadURLTTL = 15 * time.Minute

// UploadTicket is handed to the admin client so it can PUT the image
// bytes straight to object storage.
type UploadTicket struct {
	UploadURL  string    `json:"uploadUrl"`
	StorageKey string    `json:"storageKey"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ImageService manages product image uploads. The flow is two-step:
// request a ticket, upload to storage, then confirm so the product
// record points at the new image.
type ImageService struct {
	productRepo   catalog.ProductRepository
	storage       ObjectStorageService
	publicBaseURL string
	logger        *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(productRepo catalog.ProductRepository, storage ObjectStorageService, publicBaseURL string, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		productRepo:   productRepo,
		storage:       storage,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// RequestUpload issues a presigned upload ticket for a product image
func (s *ImageService) RequestUpload(ctx context.Context, productID uuid.UUID, contentType string) (*UploadTicket, error) {
	ext, ok := imageContentTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE",
			fmt.Sprintf("Content type %q is not an accepted image format", contentType))
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	storageKey := path.Join("products", productID.String(), uuid.NewString()+ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, uploadURLTTL)
	if err != nil {
		s.logger.Error("failed to presign image upload",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_UNAVAILABLE", "Could not prepare the image upload")
	}

	return &UploadTicket{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload points the product at the uploaded image. The storage
// key must come from a previously issued ticket for the same product.
func (s *ImageService) ConfirmUpload(ctx context.Context, productID uuid.UUID, storageKey string) (*ProductResponse, error) {
	if !strings.HasPrefix(storageKey, "products/"+productID.String()+"/") {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key does not belong to this product")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_UNAVAILABLE", "Could not verify the uploaded image")
	}
	if !exists {
		return nil, shared.NewDomainError("IMAGE_NOT_UPLOADED", "No image was uploaded for this key")
	}

	if err := product.SetImageURL(s.publicBaseURL + "/" + storageKey); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product image updated",
		zap.String("product_id", productID.String()),
		zap.String("storage_key", storageKey))

	response := ToProductResponse(product)
	return &response, nil
}
