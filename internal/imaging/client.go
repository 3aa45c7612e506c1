package imaging

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/config"
)

// Image is one blob-store entry as returned by the /images interface
type Image struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// DataURI renders the image as an inline data URI for direct display
func (i Image) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Source is the blob-store read interface the resolver depends on
type Source interface {
	// ImagesByCategory returns all images in a bucket, ordered by
	// ascending store id
	ImagesByCategory(ctx context.Context, category string) ([]Image, error)
	// ImageByName returns nil, nil when no image matches
	ImageByName(ctx context.Context, name string) (*Image, error)
}

// Client queries the blob-store HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new blob-store client
func NewClient(cfg config.ImageStoreConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) ImagesByCategory(ctx context.Context, category string) ([]Image, error) {
	var payload struct {
		Images []Image `json:"images"`
	}
	if err := c.get(ctx, "category", category, &payload); err != nil {
		return nil, err
	}
	return payload.Images, nil
}

func (c *Client) ImageByName(ctx context.Context, name string) (*Image, error) {
	var payload struct {
		Image *Image `json:"image"`
	}
	if err := c.get(ctx, "name", name, &payload); err != nil {
		return nil, err
	}
	return payload.Image, nil
}

func (c *Client) get(ctx context.Context, param, value string, out interface{}) error {
	reqURL := fmt.Sprintf("%s/images?%s=%s", c.baseURL, param, url.QueryEscape(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image store error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
