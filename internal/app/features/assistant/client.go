// internal/app/features/assistant/client.go
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Gemini-style REST endpoint prefix.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("assistant: no API key configured")

// Client calls an opaque text-completion endpoint. One request per call, no
// retry; callers fall back to a static message on any error.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
}

func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
	}
}

// Source is one grounding citation attached to a search answer.
type Source struct {
	Title string
	URI   string
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch *googleSearch `json:"googleSearch,omitempty"`
}

type googleSearch struct{}

type generateResponse struct {
	Candidates []struct {
		Content           content            `json:"content"`
		GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []struct {
		Web struct {
			URI   string `json:"uri"`
			Title string `json:"title"`
		} `json:"web"`
	} `json:"groundingChunks"`
}

// Complete sends one prompt and returns the first candidate's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	parsed, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	return candidateText(parsed)
}

// SearchGrounded answers a query with the web-search tool enabled and returns
// the answer text together with the cited sources. The model may answer
// without citing anything, in which case sources is empty.
func (c *Client) SearchGrounded(ctx context.Context, query string) (string, []Source, error) {
	parsed, err := c.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: query}}}},
		Tools:    []tool{{GoogleSearch: &googleSearch{}}},
	})
	if err != nil {
		return "", nil, err
	}

	text, err := candidateText(parsed)
	if err != nil {
		return "", nil, err
	}

	var sources []Source
	if gm := parsed.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web.URI == "" {
				continue
			}
			sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return text, sources, nil
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (*generateResponse, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.BaseURL, url.PathEscape(c.Model), url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant: completion endpoint returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("assistant: %s", parsed.Error.Message)
	}
	return &parsed, nil
}

func candidateText(parsed *generateResponse) (string, error) {
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("assistant: empty completion")
	}

	var out strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("assistant: empty completion")
	}
	return text, nil
}
