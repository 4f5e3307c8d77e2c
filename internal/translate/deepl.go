// Package translate sends text batches to the DeepL API.
package translate

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
)

const (
	// DefaultEndpoint is the DeepL Free endpoint; Pro accounts override it
	// via DEEPL_ENDPOINT.
	DefaultEndpoint = "https://api-free.deepl.com/v2/translate"

	// TargetLang is the fixed output language.
	TargetLang = "JA"

	requestTimeout = 12 * time.Second
)

// AllowedSources are the detected languages that get translated output.
// Anything else (including the target language itself) is shown verbatim.
var AllowedSources = map[string]bool{"EN": true, "ZH": true, "KO": true}

// Translator converts a batch of lines into display strings.
type Translator interface {
	TranslateBatch(ctx context.Context, lines []string) ([]string, error)
}

// cacheEntry maps an original line to what we display for it.
type cacheEntry struct {
	Lang    string
	Display string
}

// Client is a DeepL API client with an in-memory cache keyed by original
// text. The cache lives as long as the Client and grows without bound;
// acceptable for a session-scoped tool where the dedupe set upstream
// grows the same way.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      map[string]cacheEntry
}

// NewClient creates a client for the given credentials. An empty apiKey
// puts the client in pass-through mode: TranslateBatch returns its input
// unchanged and never touches the network.
func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cache: make(map[string]cacheEntry),
	}
}

// NewClientFromEnv reads DEEPL_API_KEY and DEEPL_ENDPOINT from the
// environment. The caller is expected to have loaded .env already.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("DEEPL_API_KEY"), os.Getenv("DEEPL_ENDPOINT"))
}

// Configured reports whether a credential is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// deeplResponse mirrors the DeepL v2 translate response body.
type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// TranslateBatch returns one display string per input line, same order.
// Lines whose detected source language is in AllowedSources come back as
// "[XX] <translation>"; everything else comes back verbatim. Uncached
// lines are sent to DeepL in a single request; any failure fails the
// whole batch with no partial results.
func (c *Client) TranslateBatch(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return []string{}, nil
	}
	if !c.Configured() {
		out := make([]string, len(lines))
		copy(out, lines)
		return out, nil
	}

	var toSend []string
	for _, ln := range lines {
		if _, ok := c.cache[ln]; !ok {
			toSend = append(toSend, ln)
		}
	}

	if len(toSend) > 0 {
		if err := c.requestBatch(ctx, toSend); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(lines))
	for i, ln := range lines {
		if entry, ok := c.cache[ln]; ok {
			out[i] = entry.Display
		} else {
			out[i] = ln
		}
	}
	return out, nil
}

// requestBatch sends toSend to DeepL and fills the cache from the response.
func (c *Client) requestBatch(ctx context.Context, toSend []string) error {
	form := url.Values{}
	for _, ln := range toSend {
		form.Add("text", ln)
	}
	form.Set("target_lang", TargetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("translate endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode translate response: %w", err)
	}

	// The mapping back to inputs is positional, so a response with a
	// different entry count cannot be zipped safely.
	if len(decoded.Translations) != len(toSend) {
		return fmt.Errorf("translate response has %d entries for %d inputs", len(decoded.Translations), len(toSend))
	}

	for i, tr := range decoded.Translations {
		orig := toSend[i]
		src := strings.ToUpper(tr.DetectedSourceLanguage)
		if AllowedSources[src] {
			c.cache[orig] = cacheEntry{Lang: src, Display: fmt.Sprintf("[%s] %s", src, tr.Text)}
		} else {
			c.cache[orig] = cacheEntry{Lang: src, Display: orig}
		}
	}
	return nil
}

// CacheLen returns the number of cached originals.
func (c *Client) CacheLen() int {
	return len(c.cache)
}
