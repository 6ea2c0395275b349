package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "pos-images",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Endpoint:          endpoint,
		UsePathStyle:      true,
		PresignExpiration: 15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("localhost:9000")
			tt.mutate(cfg)
			_, err := NewS3ObjectStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", false, "http://localhost:9000"},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"https://s3.example.com/", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	t.Run("defaults to endpoint and bucket", func(t *testing.T) {
		s, err := NewS3ObjectStorage(testConfig("localhost:9000"))
		require.NoError(t, err)

		u := s.PublicURL("products/1/a.png")
		assert.Equal(t, "http://localhost:9000/pos-images/products/1/a.png", u)

		key, ok := s.KeyFromURL(u)
		assert.True(t, ok)
		assert.Equal(t, "products/1/a.png", key)
	})

	t.Run("configured base url", func(t *testing.T) {
		cfg := testConfig("localhost:9000")
		cfg.PublicBaseURL = "https://cdn.example.com/img/"
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/img/k.png", s.PublicURL("k.png"))
		_, ok := s.KeyFromURL("https://elsewhere.example.com/k.png")
		assert.False(t, ok)
		_, ok = s.KeyFromURL("")
		assert.False(t, ok)
	})
}

func TestS3ObjectStorage_GenerateUploadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(testConfig("http://localhost:9000"), WithPresignExpiration(time.Hour))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		u, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		require.Error(t, err)
		assert.Empty(t, u)
	})

	t.Run("presigns a path style PUT", func(t *testing.T) {
		u, expiresAt, err := s.GenerateUploadURL(ctx, "products/p1/a.png", "image/png", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(u, "http://localhost:9000/pos-images/products/p1/a.png?"))
		assert.Contains(t, u, "X-Amz-Signature=")
		assert.Contains(t, u, "X-Amz-Expires=600")
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("falls back to the configured expiry", func(t *testing.T) {
		u, _, err := s.GenerateUploadURL(ctx, "products/p1/b.png", "image/png", 0)
		require.NoError(t, err)
		assert.Contains(t, u, "X-Amz-Expires=3600")
	})
}

// fakeS3 answers HEAD and DELETE for a set of object paths
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodHead:
		if f.objects[r.URL.Path] {
			w.Header().Set("Content-Type", "image/png")
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPut:
		f.objects[r.URL.Path] = true
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3ObjectStorage_AgainstFakeServer(t *testing.T) {
	fake := &fakeS3{objects: map[string]bool{"/pos-images/products/p1/a.png": true}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	s, err := NewS3ObjectStorage(testConfig(server.URL), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	ctx := context.Background()

	exists, err := s.ObjectExists(ctx, "products/p1/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ObjectExists(ctx, "products/p1/missing.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, "products/p1/b.png", []byte("png"), "image/png"))
	exists, err = s.ObjectExists(ctx, "products/p1/b.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "products/p1/a.png"))
	exists, err = s.ObjectExists(ctx, "products/p1/a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3ObjectStorage_EmptyKeys(t *testing.T) {
	s, err := NewS3ObjectStorage(testConfig("localhost:9000"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
	assert.Error(t, s.DeleteObject(ctx, ""))
	assert.Error(t, s.Upload(ctx, "", nil, "image/png"))
	assert.Equal(t, "pos-images", s.Bucket())
}
