package imaging

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.ImageStoreConfig{BaseURL: server.URL}, zap.NewNop())
}

func TestClient_ImagesByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images", r.URL.Path)
		assert.Equal(t, "Branded shorts", r.URL.Query().Get("category"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []map[string]string{
				{"name": "img-1", "data": base64.StdEncoding.EncodeToString([]byte{1, 2})},
				{"name": "img-2", "data": base64.StdEncoding.EncodeToString([]byte{3})},
			},
		})
	})

	images, err := client.ImagesByCategory(context.Background(), "Branded shorts")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "img-1", images[0].Name)
	assert.Equal(t, []byte{1, 2}, images[0].Data)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte{3}), images[1].DataURI())
}

func TestClient_ImageByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "store-picture", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"image": map[string]string{
				"name": "store-picture",
				"data": base64.StdEncoding.EncodeToString([]byte{9}),
			},
		})
	})

	image, err := client.ImageByName(context.Background(), "store-picture")
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, "store-picture", image.Name)
}

func TestClient_ImageByName_Missing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"image": nil})
	})

	image, err := client.ImageByName(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, image)
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"failed to fetch images"}`, http.StatusInternalServerError)
	})

	_, err := client.ImagesByCategory(context.Background(), "Branded shorts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.ImagesByCategory(context.Background(), "Branded shorts")
	require.Error(t, err)
}
