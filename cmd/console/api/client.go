package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wfstat-cloud/wfstat/cmd/console/config"
)

// Client wraps HTTP interaction with the wfstat REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New constructs a client from the provided configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (c *Client) resolve(path string, queries ...string) string {
	raw := strings.TrimSuffix(c.baseURL.String(), "/") + path

	filtered := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.Trim(q, "?& ")
		if q != "" {
			filtered = append(filtered, q)
		}
	}

	if len(filtered) == 0 {
		return raw
	}

	return raw + "?" + strings.Join(filtered, "&")
}

func decodeBody(body io.ReadCloser, target any) error {
	decoder := json.NewDecoder(body)

	decodeErr := decoder.Decode(target)
	closeErr := body.Close()
	if decodeErr != nil {
		if closeErr != nil {
			return errors.Join(decodeErr, closeErr)
		}
		return decodeErr
	}
	return closeErr
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errStatus := fmt.Errorf("request failed: %s", resp.Status)
		if err := resp.Body.Close(); err != nil {
			return errors.Join(errStatus, err)
		}
		return errStatus
	}

	return decodeBody(resp.Body, v)
}
