package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func newImageService() (*ImageService, *MockProductRepository, *MockObjectStorage) {
	productRepo := new(MockProductRepository)
	objectStorage := new(MockObjectStorage)
	service := NewImageService(productRepo, objectStorage, "https://cdn.komorebi.example/", nil)
	return service, productRepo, objectStorage
}

func newImageTestProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", decimal.NewFromInt(price))
	require.NoError(t, err)
	return product
}

func TestImageService_RequestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a ticket for a known product", func(t *testing.T) {
		service, productRepo, objectStorage := newImageService()
		product := newImageTestProduct(t, "Iron Teapot (Kyusu)", 120)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		expiresAt := time.Now().Add(15 * time.Minute)
		objectStorage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", 15*time.Minute).
			Return("https://s3.example/put", expiresAt, nil)

		ticket, err := service.RequestUpload(ctx, product.ID, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example/put", ticket.UploadURL)
		assert.True(t, strings.HasPrefix(ticket.StorageKey, "products/"+product.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(ticket.StorageKey, ".jpg"))
		assert.Equal(t, expiresAt, ticket.ExpiresAt)
	})

	t.Run("rejects non-image content types", func(t *testing.T) {
		service, _, _ := newImageService()

		_, err := service.RequestUpload(ctx, uuid.New(), "application/pdf")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNSUPPORTED_IMAGE_TYPE", domainErr.Code)
	})

	t.Run("fails for an unknown product", func(t *testing.T) {
		service, productRepo, _ := newImageService()
		missing := uuid.New()
		productRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := service.RequestUpload(ctx, missing, "image/png")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestImageService_ConfirmUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the product image URL", func(t *testing.T) {
		service, productRepo, objectStorage := newImageService()
		product := newImageTestProduct(t, "Ceramic Flower Vase", 85)
		key := "products/" + product.ID.String() + "/photo.jpg"

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		objectStorage.On("ObjectExists", ctx, key).Return(true, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		response, err := service.ConfirmUpload(ctx, product.ID, key)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.komorebi.example/"+key, response.ImageURL)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects keys issued for another product", func(t *testing.T) {
		service, _, _ := newImageService()

		_, err := service.ConfirmUpload(ctx, uuid.New(), "products/"+uuid.NewString()+"/photo.jpg")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STORAGE_KEY", domainErr.Code)
	})

	t.Run("fails when the object was never uploaded", func(t *testing.T) {
		service, productRepo, objectStorage := newImageService()
		product := newImageTestProduct(t, "Wooden Bento Box", 110)
		key := "products/" + product.ID.String() + "/photo.jpg"

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		objectStorage.On("ObjectExists", ctx, key).Return(false, nil)

		_, err := service.ConfirmUpload(ctx, product.ID, key)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "IMAGE_NOT_UPLOADED", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", ctx, product)
	})
}
