// Package apibible implements the content provider on top of the API.Bible
// REST API. Requests carry the api-key header and go through a token bucket
// because the upstream enforces a request quota.
package apibible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/scripture-backend/internal/config"
	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
)

const introChapter = "intro"

// Provider fetches translations, books and verses from API.Bible.
type Provider struct {
	baseURL    string
	apiKey     string
	retryDelay time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewProvider creates a Provider from explicit configuration.
// A non-positive RequestsPerSecond disables rate limiting.
func NewProvider(cfg config.ProviderConfig, logger *slog.Logger) *Provider {
	return NewProviderWithClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewProviderWithClient creates a Provider with a caller-supplied HTTP client (for testing).
func NewProviderWithClient(cfg config.ProviderConfig, client *http.Client, logger *slog.Logger) *Provider {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		retryDelay: cfg.RetryDelay,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, burst),
		log:        logger.With("adapter", "apibible"),
	}
}

// FetchTranslations returns the provider's full translation catalog.
func (p *Provider) FetchTranslations(ctx context.Context) ([]provider.TranslationResult, error) {
	var bibles []apiBible
	if err := p.getJSON(ctx, "/bibles", nil, &bibles); err != nil {
		return nil, fmt.Errorf("apibible: fetch translations: %w", err)
	}

	results := make([]provider.TranslationResult, 0, len(bibles))
	for _, b := range bibles {
		if b.ID == "" {
			return nil, fmt.Errorf("apibible: translation without id: %w", provider.ErrMalformed)
		}
		results = append(results, provider.TranslationResult{
			ProviderID:  b.ID,
			Name:        firstNonEmpty(b.Name, b.NameLocal),
			Language:    firstNonEmpty(b.Language.Name, b.Language.NameLocal),
			LanguageID:  b.Language.ID,
			Version:     firstNonEmpty(b.Abbreviation, b.AbbreviationLocal, b.Name),
			Description: b.Description,
		})
	}

	p.log.DebugContext(ctx, "apibible translations", slog.Int("count", len(results)))

	return results, nil
}

// FetchBooks returns the books of a translation in canonical order with their
// chapter counts. The "intro" pseudo-chapter is not counted.
func (p *Provider) FetchBooks(ctx context.Context, translationProviderID string) ([]provider.BookResult, error) {
	path := "/bibles/" + url.PathEscape(translationProviderID) + "/books"
	query := url.Values{"include-chapters": {"true"}}

	var books []apiBook
	if err := p.getJSON(ctx, path, query, &books); err != nil {
		return nil, fmt.Errorf("apibible: fetch books of %s: %w", translationProviderID, err)
	}

	results := make([]provider.BookResult, 0, len(books))
	for _, b := range books {
		if b.ID == "" {
			return nil, fmt.Errorf("apibible: book without id: %w", provider.ErrMalformed)
		}
		results = append(results, provider.BookResult{
			ProviderID:   b.ID,
			Name:         firstNonEmpty(b.Name, b.NameLong, b.ID),
			Abbreviation: firstNonEmpty(b.Abbreviation, b.ID),
			ChapterCount: countChapters(b.Chapters),
		})
	}

	p.log.DebugContext(ctx, "apibible books",
		slog.String("translation", translationProviderID),
		slog.Int("count", len(results)),
	)

	return results, nil
}

// FetchVerse returns the plain-text content of one verse. Chapter 0 addresses the
// book introduction. A verse the provider does not know wraps provider.ErrNotFound.
func (p *Provider) FetchVerse(ctx context.Context, translationProviderID, bookProviderID string, chapter, verse int) (*provider.VerseResult, error) {
	if chapter < 0 {
		return nil, domain.NewValidationError("chapter", "must be >= 0")
	}
	if verse < 1 {
		return nil, domain.NewValidationError("verse", "must be >= 1")
	}

	verseID := VerseID(bookProviderID, chapter, verse)
	path := "/bibles/" + url.PathEscape(translationProviderID) + "/verses/" + url.PathEscape(verseID)
	query := url.Values{
		"content-type":          {"text"},
		"include-notes":         {"false"},
		"include-titles":        {"false"},
		"include-verse-numbers": {"false"},
	}

	var v apiVerse
	if err := p.getJSON(ctx, path, query, &v); err != nil {
		return nil, fmt.Errorf("apibible: fetch verse %s: %w", verseID, err)
	}

	return &provider.VerseResult{
		ProviderID: firstNonEmpty(v.ID, verseID),
		Content:    strings.TrimSpace(v.Content),
	}, nil
}

// VerseID builds the provider verse identifier, e.g. "GEN.1.1" or "GEN.intro.1".
func VerseID(bookProviderID string, chapter, verse int) string {
	segment := introChapter
	if chapter != domain.IntroChapterNumber {
		segment = strconv.Itoa(chapter)
	}
	return bookProviderID + "." + segment + "." + strconv.Itoa(verse)
}

// getJSON performs a GET against the API and decodes the data envelope into dst.
func (p *Provider) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	reqURL := p.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "apibible request failed", slog.String("path", path), slog.String("error", err.Error()))
		return fmt.Errorf("request failed: %w: %w", provider.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return provider.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %w", resp.StatusCode, provider.ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w: %w", provider.ErrUnavailable, err)
	}

	env := envelope[json.RawMessage]{}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode json: %w: %w", provider.ErrMalformed, err)
	}
	if env.Data == nil {
		return fmt.Errorf("missing data: %w", provider.ErrMalformed)
	}
	if err := json.Unmarshal(*env.Data, dst); err != nil {
		return fmt.Errorf("decode data: %w: %w", provider.ErrMalformed, err)
	}

	p.log.DebugContext(ctx, "apibible response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
// Both attempts wait for the rate limiter.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, errors.Join(err, ctx.Err())
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "apibible retry", slog.String("url", req.URL.Path), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return p.httpClient.Do(req)
}

// countChapters counts numbered chapters, skipping the "intro" entry.
func countChapters(chapters []apiChapter) int {
	n := 0
	for _, ch := range chapters {
		if strings.EqualFold(strings.TrimSpace(ch.Number), introChapter) {
			continue
		}
		n++
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
