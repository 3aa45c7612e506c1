package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
)

type stubImageRepo struct {
	byCategory map[string][]domain.StoreImage
	byName     map[string]*domain.StoreImage
	err        error
}

func (s *stubImageRepo) ListByCategory(ctx context.Context, category string) ([]domain.StoreImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byCategory[category], nil
}

func (s *stubImageRepo) GetByName(ctx context.Context, name string) (*domain.StoreImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byName[name], nil
}

func (s *stubImageRepo) Upsert(ctx context.Context, image *domain.StoreImage) error {
	return s.err
}

func imagesRouter(images repository.ImageRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	repos := &repository.Repositories{Image: images}
	router.GET("/images", HandleGetImages(repos, zap.NewNop()))
	return router
}

func getImages(t *testing.T, router *gin.Engine, query string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/images"+query, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleGetImages_ByCategory(t *testing.T) {
	router := imagesRouter(&stubImageRepo{
		byCategory: map[string][]domain.StoreImage{
			"Linen trousers": {
				{Name: "img-1.jpg", Category: "Linen trousers", Data: []byte("first")},
				{Name: "img-2.jpg", Category: "Linen trousers", Data: []byte("second")},
			},
		},
	})

	rec, body := getImages(t, router, "?category=Linen+trousers")
	require.Equal(t, http.StatusOK, rec.Code)

	var images []ImagePayload
	require.NoError(t, json.Unmarshal(body["images"], &images))
	require.Len(t, images, 2)
	assert.Equal(t, "img-1.jpg", images[0].Name)
	assert.Equal(t, []byte("first"), images[0].Data)
}

func TestHandleGetImages_CategoryWithNoImages(t *testing.T) {
	router := imagesRouter(&stubImageRepo{})

	rec, body := getImages(t, router, "?category=Branded+shorts")
	require.Equal(t, http.StatusOK, rec.Code)

	var images []ImagePayload
	require.NoError(t, json.Unmarshal(body["images"], &images))
	assert.Empty(t, images)
}

func TestHandleGetImages_ByName(t *testing.T) {
	router := imagesRouter(&stubImageRepo{
		byName: map[string]*domain.StoreImage{
			"store-picture.jpg": {Name: "store-picture.jpg", Data: []byte("front")},
		},
	})

	rec, body := getImages(t, router, "?name=store-picture.jpg")
	require.Equal(t, http.StatusOK, rec.Code)

	var image ImagePayload
	require.NoError(t, json.Unmarshal(body["image"], &image))
	assert.Equal(t, "store-picture.jpg", image.Name)
	assert.Equal(t, []byte("front"), image.Data)
}

func TestHandleGetImages_UnknownNameIsNull(t *testing.T) {
	router := imagesRouter(&stubImageRepo{})

	rec, body := getImages(t, router, "?name=missing.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(body["image"]))
}

func TestHandleGetImages_MissingParams(t *testing.T) {
	router := imagesRouter(&stubImageRepo{})

	rec, body := getImages(t, router, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"missing category or name parameter"`, string(body["error"]))
}

func TestHandleGetImages_StoreError(t *testing.T) {
	router := imagesRouter(&stubImageRepo{err: assert.AnError})

	rec, body := getImages(t, router, "?category=Linen+trousers")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `"failed to fetch images"`, string(body["error"]))
}

func TestImagePayload_DataMarshalsAsBase64(t *testing.T) {
	raw, err := json.Marshal(ImagePayload{Name: "img-1.jpg", Data: []byte("pixels")})
	require.NoError(t, err)

	var decoded struct {
		Data string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pixels")), decoded.Data)
}
