package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"storefront/internal/config"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
	body []byte
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	args := m.Called(*params.Bucket, *params.Key, *params.ContentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestObjectKey(t *testing.T) {
	key := objectKey("products/", "Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, objectKey("products/", "Photo.JPG"))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a/b.png", joinURL("https://cdn.example.com/", "/a/b.png"))
	assert.Equal(t, "https://cdn.example.com/a/b.png", joinURL("https://cdn.example.com", "a/b.png"))
}

func TestS3Store_Upload(t *testing.T) {
	cfg := config.StorageConfig{Bucket: "shop-images", Region: "eu-west-1", Prefix: "products/"}

	t.Run("returns bucket URL", func(t *testing.T) {
		putter := new(mockPutter)
		putter.On("PutObject", "shop-images", mock.AnythingOfType("string"), "image/png").
			Return(&s3.PutObjectOutput{}, nil)

		store := newS3Store(putter, cfg, zerolog.Nop())
		url, err := store.Upload(context.Background(), "tee.png", "image/png", []byte("png-bytes"))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://shop-images.s3.eu-west-1.amazonaws.com/products/"))
		assert.True(t, strings.HasSuffix(url, ".png"))
		assert.Equal(t, []byte("png-bytes"), putter.body)
		putter.AssertExpectations(t)
	})

	t.Run("honours public base URL", func(t *testing.T) {
		putter := new(mockPutter)
		putter.On("PutObject", "shop-images", mock.AnythingOfType("string"), "image/jpeg").
			Return(&s3.PutObjectOutput{}, nil)

		withCDN := cfg
		withCDN.PublicBaseURL = "https://cdn.example.com/"
		store := newS3Store(putter, withCDN, zerolog.Nop())
		url, err := store.Upload(context.Background(), "tee.jpg", "image/jpeg", []byte("x"))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/products/"))
	})

	t.Run("wraps put failure", func(t *testing.T) {
		putter := new(mockPutter)
		putter.On("PutObject", "shop-images", mock.AnythingOfType("string"), "image/png").
			Return(nil, errors.New("access denied"))

		store := newS3Store(putter, cfg, zerolog.Nop())
		_, err := store.Upload(context.Background(), "tee.png", "image/png", []byte("x"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Backend: "ftp"}, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}
