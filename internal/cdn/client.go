// Package cdn pushes publicly reachable URLs to the CDN, which pulls
// the content back and hosts it durably.
package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingToken is returned when no CDN credential is configured at
// the point of use. It is a configuration fault, not a client error.
var ErrMissingToken = errors.New("CDN token missing")

type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewClient(url, token string) *Client {
	return &Client{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type uploadResponse struct {
	Files []struct {
		DeployedURL string `json:"deployedUrl"`
		File        string `json:"file"`
		SHA         string `json:"sha"`
		Size        int    `json:"size"`
	} `json:"files"`
	CDNBase string `json:"cdnBase"`
}

// Upload asks the CDN to pull sourceURL and returns the deployed URL it
// is served from afterwards.
func (c *Client) Upload(ctx context.Context, sourceURL string) (string, error) {
	if c.token == "" {
		return "", ErrMissingToken
	}

	body, err := json.Marshal([]string{sourceURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("CDN upload failed with status %d: %s", resp.StatusCode, text)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Files) == 0 {
		return "", errors.New("CDN upload response contained no files")
	}

	return result.Files[0].DeployedURL, nil
}
