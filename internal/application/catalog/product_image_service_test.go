package catalog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const cdn = "https://cdn.example.com/pos-images/"

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockObjectStorage) PublicURL(key string) string {
	return cdn + key
}

func (m *mockObjectStorage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, cdn) {
		return "", false
	}
	return strings.TrimPrefix(url, cdn), true
}

type imageFixture struct {
	service   *appcatalog.ProductImageService
	storage   *mockObjectStorage
	publisher *testutil.RecordingPublisher
	products  *persistence.GormProductRepository
	product   *catalog.Product
	admin     identity.ActorContext
	seller    identity.ActorContext
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	branch := testutil.SeedBranch(t, db, "Centro")
	admin := testutil.SeedUser(t, db, "admin@example.com", identity.RoleAdmin, nil)
	seller := testutil.SeedUser(t, db, "seller@example.com", identity.RoleSeller, &branch.ID)
	category := testutil.SeedCategory(t, db, "Drinks")

	storage := &mockObjectStorage{}
	t.Cleanup(func() { storage.AssertExpectations(t) })
	repo := persistence.NewGormProductRepository(db)
	publisher := &testutil.RecordingPublisher{}
	service := appcatalog.NewProductImageService(repo, storage, zaptest.NewLogger(t))
	service.SetEventPublisher(publisher)
	service.SetUploadURLExpiry(5 * time.Minute)

	return &imageFixture{
		service:   service,
		storage:   storage,
		publisher: publisher,
		products:  repo,
		product:   testutil.SeedProduct(t, db, category.ID, "Cola", 3),
		admin:     admin.Actor(),
		seller:    seller.Actor(),
	}
}

func TestProductImageService_RequestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns a key under the product", func(t *testing.T) {
		f := newImageFixture(t)
		expires := time.Now().Add(5 * time.Minute)
		prefix := "products/" + f.product.ID.String() + "/"
		f.storage.On("GenerateUploadURL", mock.Anything,
			mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, ".png")
			}),
			"image/png", 5*time.Minute,
		).Return("https://s3.example.com/upload?sig=abc", expires, nil).Once()

		resp, err := f.service.RequestUpload(ctx, f.admin, f.product.ID, appcatalog.ImageUploadRequest{ContentType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example.com/upload?sig=abc", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.ObjectKey, prefix))
		assert.Equal(t, expires, resp.ExpiresAt)
	})

	t.Run("rejects non image types", func(t *testing.T) {
		f := newImageFixture(t)
		_, err := f.service.RequestUpload(ctx, f.admin, f.product.ID, appcatalog.ImageUploadRequest{ContentType: "application/pdf"})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("admin only", func(t *testing.T) {
		f := newImageFixture(t)
		_, err := f.service.RequestUpload(ctx, f.seller, f.product.ID, appcatalog.ImageUploadRequest{ContentType: "image/png"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newImageFixture(t)
		_, err := f.service.RequestUpload(ctx, f.admin, uuid.New(), appcatalog.ImageUploadRequest{ContentType: "image/jpeg"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductImageService_ConfirmUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the public url and replaces the previous image", func(t *testing.T) {
		f := newImageFixture(t)
		first := "products/" + f.product.ID.String() + "/first.png"
		second := "products/" + f.product.ID.String() + "/second.png"
		f.storage.On("ObjectExists", mock.Anything, first).Return(true, nil).Once()
		f.storage.On("ObjectExists", mock.Anything, second).Return(true, nil).Once()
		f.storage.On("DeleteObject", mock.Anything, first).Return(nil).Once()

		resp, err := f.service.ConfirmUpload(ctx, f.admin, f.product.ID, appcatalog.ConfirmImageRequest{ObjectKey: first})
		require.NoError(t, err)
		assert.Equal(t, cdn+first, resp.Image)

		_, err = f.service.ConfirmUpload(ctx, f.admin, f.product.ID, appcatalog.ConfirmImageRequest{ObjectKey: second})
		require.NoError(t, err)

		stored, err := f.products.FindByID(ctx, f.product.ID)
		require.NoError(t, err)
		assert.Equal(t, cdn+second, stored.Image)
		assert.Len(t, f.publisher.EventsOfType(catalog.EventTypeProductChanged), 2)
	})

	t.Run("key of another product", func(t *testing.T) {
		f := newImageFixture(t)
		_, err := f.service.ConfirmUpload(ctx, f.admin, f.product.ID, appcatalog.ConfirmImageRequest{
			ObjectKey: "products/" + uuid.NewString() + "/x.png",
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("object not uploaded", func(t *testing.T) {
		f := newImageFixture(t)
		key := "products/" + f.product.ID.String() + "/missing.png"
		f.storage.On("ObjectExists", mock.Anything, key).Return(false, nil).Once()

		_, err := f.service.ConfirmUpload(ctx, f.admin, f.product.ID, appcatalog.ConfirmImageRequest{ObjectKey: key})
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestProductImageService_RemoveImage(t *testing.T) {
	ctx := context.Background()
	f := newImageFixture(t)
	key := "products/" + f.product.ID.String() + "/a.webp"
	f.storage.On("ObjectExists", mock.Anything, key).Return(true, nil).Once()
	f.storage.On("DeleteObject", mock.Anything, key).Return(assert.AnError).Once()

	_, err := f.service.ConfirmUpload(ctx, f.admin, f.product.ID, appcatalog.ConfirmImageRequest{ObjectKey: key})
	require.NoError(t, err)

	// A failed delete leaves an orphan object but the product is still cleared
	require.NoError(t, f.service.RemoveImage(ctx, f.admin, f.product.ID))
	stored, err := f.products.FindByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Image)

	// Nothing to remove
	require.NoError(t, f.service.RemoveImage(ctx, f.admin, f.product.ID))
}
