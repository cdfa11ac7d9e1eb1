package tika

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/extract"
)

const contentField = "X-TIKA:content"

// Client extracts document text via an Apache Tika server.
// It implements extract.Extractor over Tika's /rmeta/text endpoint, which
// returns extracted plain text and document metadata in one call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ extract.Extractor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a Tika server client.
// baseURL is the Tika instance URL (e.g., "http://localhost:9998").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Extract uploads the file at path and returns the extracted text and
// metadata. All failures (unreadable file, unreachable or erroring backend,
// unparseable response) surface as *extract.Error.
func (c *Client) Extract(ctx context.Context, path string) (*core.ExtractedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &extract.Error{Path: path, Message: "cannot open file", Err: err}
	}
	defer f.Close()

	u, err := url.Parse(c.baseURL + "/rmeta/text")
	if err != nil {
		return nil, &extract.Error{Path: path, Message: "invalid tika URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), f)
	if err != nil {
		return nil, &extract.Error{Path: path, Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	// Embedded documents (attachments inside the file) are not extracted,
	// matching the original pipeline's Tika configuration.
	req.Header.Set("X-Tika-Skip-Embedded", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &extract.Error{Path: path, Message: "tika unavailable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &extract.Error{Path: path, Message: "read tika response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &extract.Error{
			Path:    path,
			Message: fmt.Sprintf("tika returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	return parseRecursiveMetadata(path, body)
}

// parseRecursiveMetadata converts a /rmeta/text payload into an
// ExtractedDocument. The payload is a JSON array with one object per parsed
// document; the container document comes first.
func parseRecursiveMetadata(path string, body []byte) (*core.ExtractedDocument, error) {
	var parsed []map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &extract.Error{Path: path, Message: "unparseable tika response", Err: err}
	}
	if len(parsed) == 0 {
		return nil, &extract.Error{Path: path, Message: "empty tika response"}
	}

	root := parsed[0]
	doc := &core.ExtractedDocument{
		Metadata: make(map[string]string, len(root)),
	}

	for key, value := range root {
		if key == contentField {
			if s, ok := value.(string); ok {
				doc.Content = strings.TrimSpace(s)
			}
			continue
		}
		doc.Metadata[key] = flattenMetadataValue(value)
	}

	return doc, nil
}

// flattenMetadataValue renders a Tika metadata value (string or array of
// strings) as a single string.
func flattenMetadataValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
