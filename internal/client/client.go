// Package client uploads files to and fetches files from a quickdrop server.
package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to one quickdrop server
type Client struct {
	baseURL string
	client  *resty.Client
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: resty.New().
			SetTimeout(10*time.Minute).
			SetHeader("User-Agent", "quickdrop-upload/1.0"),
	}
}

// Upload sends the file at path and returns the URL the server stored it
// under. key is only sent when non-empty.
func (c *Client) Upload(ctx context.Context, path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	req := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filepath.Base(path), f)
	if key != "" {
		req.SetFormData(map[string]string{"key": key})
	}

	resp, err := req.Post(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("server returned status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return strings.TrimSpace(resp.String()), nil
}

// Fetch downloads the file behind url
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("server returned status %d for %s", resp.StatusCode(), url)
	}

	return resp.Body(), nil
}
