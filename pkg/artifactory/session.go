package artifactory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the connection settings for an Artifactory instance.
type Config struct {
	// Server is the base URL, e.g. "https://repo.example.com/artifactory".
	Server string

	// User and Password authenticate every request via basic auth.
	// Password may be an API token.
	User     string
	Password string

	// Timeout bounds individual API requests. Default: 60s.
	Timeout time.Duration
}

// Client talks to the Artifactory REST API. Artifact listings go through
// AQL (Artifactory Query Language) so that size, timestamps, download
// stats, and properties arrive in a single request per repository.
type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a session client for the given connection settings.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("server URL cannot be empty")
	}
	if _, err := url.Parse(cfg.Server); err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.Server, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.Server, "/"),
		user:       cfg.User,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "artifactory.client"),
	}, nil
}

// APIError is returned when Artifactory answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("artifactory API %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Repositories returns the keys of all repositories on the instance.
func (c *Client) Repositories(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/repositories", "", nil)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode repository listing: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	return keys, nil
}

// aqlResult mirrors the wire shape of an AQL items.find response.
type aqlResult struct {
	Results []struct {
		Repo       string `json:"repo"`
		Path       string `json:"path"`
		Name       string `json:"name"`
		Type       string `json:"type"`
		Size       int64  `json:"size"`
		Created    string `json:"created"`
		Modified   string `json:"modified"`
		Properties []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"properties"`
		Stats []struct {
			Downloads  int64  `json:"downloads"`
			Downloaded string `json:"downloaded"`
		} `json:"stats"`
	} `json:"results"`
}

// List returns every item in the repository, folders included, with
// download stats and properties attached.
func (c *Client) List(ctx context.Context, repo string) ([]Item, error) {
	query := fmt.Sprintf(
		`items.find({"repo": %q}).include("repo", "path", "name", "type", "size", "created", "modified", "property", "stat")`,
		repo,
	)

	body, err := c.do(ctx, http.MethodPost, "/api/search/aql", "text/plain", strings.NewReader(query))
	if err != nil {
		return nil, err
	}

	var result aqlResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode AQL response: %w", err)
	}

	items := make([]Item, 0, len(result.Results))
	for _, raw := range result.Results {
		item := Item{
			Repo:         raw.Repo,
			Path:         raw.Path,
			Name:         raw.Name,
			Size:         raw.Size,
			Folder:       raw.Type == "folder",
			Created:      parseTime(raw.Created),
			LastModified: parseTime(raw.Modified),
		}

		// AQL reports the repository root as path ".", which Item
		// treats as empty.
		if item.Path == "." {
			item.Path = ""
		}

		if len(raw.Properties) > 0 {
			item.Properties = make(map[string]string, len(raw.Properties))
			for _, prop := range raw.Properties {
				item.Properties[prop.Key] = prop.Value
			}
		}

		if len(raw.Stats) > 0 {
			item.DownloadCount = raw.Stats[0].Downloads
			item.LastDownloaded = parseTime(raw.Stats[0].Downloaded)
		}

		items = append(items, item)
	}

	c.logger.Debug("repository listed", "repo", repo, "items", len(items))
	return items, nil
}

// Delete removes the item from its repository.
func (c *Client) Delete(ctx context.Context, item Item) error {
	endpoint := "/" + url.PathEscape(item.Repo)
	for _, segment := range strings.Split(item.FullPath(), "/")[1:] {
		endpoint += "/" + url.PathEscape(segment)
	}

	if _, err := c.do(ctx, http.MethodDelete, endpoint, "", nil); err != nil {
		return err
	}

	c.logger.Debug("artifact deleted", "path", item.FullPath())
	return nil
}

// do issues one API request and returns the response body. Non-2xx
// statuses become an *APIError.
func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(bytes.TrimSpace(data)),
		}
	}

	return data, nil
}

// parseTime parses Artifactory's ISO 8601 timestamps, returning the zero
// time for empty or malformed values.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
