package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"rosinstall-gen/internal/ports"
	"rosinstall-gen/internal/shared"
	"rosinstall-gen/internal/types"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second
const documentCacheSize = 64

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

// FileFetcherAdapter reads documents from the local filesystem.  Locations
// may be plain paths or file:// URLs.
type FileFetcherAdapter struct{}

func NewFileFetcherAdapter() FileFetcherAdapter {
	return FileFetcherAdapter{}
}

func (a FileFetcherAdapter) Fetch(ctx context.Context, location string) ([]byte, error) {
	path := strings.TrimPrefix(location, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("document not found: %s", path)).
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("document read")
	return data, nil
}

// HTTPFetcherAdapter downloads documents over http(s), retrying transient
// failures.  Successful responses are kept in a small in-process cache, so
// repeated fetches through the same adapter download a document once.
type HTTPFetcherAdapter struct {
	user   string
	apiKey string
	token  string
	cfg    httpRetryConfig
	client *http.Client
	cache  *lru.Cache[string, []byte]
}

func NewHTTPFetcherAdapter(config types.CatalogConfig) (*HTTPFetcherAdapter, error) {
	cache, err := lru.New[string, []byte](documentCacheSize)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document cache").
			WithCause(err)
	}
	cfg := normalizeHTTPConfig(config.HTTPTimeoutSec, config.HTTPRetries, config.HTTPRetryDelayMs)
	return &HTTPFetcherAdapter{
		user:   config.User,
		apiKey: config.APIKey,
		token:  config.Token,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.timeout},
		cache:  cache,
	}, nil
}

func (a *HTTPFetcherAdapter) Fetch(ctx context.Context, location string) ([]byte, error) {
	if data, ok := a.cache.Get(location); ok {
		return data, nil
	}
	resp, err := a.doRequest(ctx, location)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		code := errbuilder.CodeInternal
		if resp.StatusCode == http.StatusNotFound {
			code = errbuilder.CodeNotFound
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			code = errbuilder.CodePermissionDenied
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to download %s", location)).
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, location, string(body)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", location)).
			WithCause(err)
	}
	a.cache.Add(location, data)
	log.Ctx(ctx).Debug().Str("url", location).Int("bytes", len(data)).Msg("document downloaded")
	return data, nil
}

func (a *HTTPFetcherAdapter) doRequest(ctx context.Context, location string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < a.cfg.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request canceled").
				WithCause(ctx.Err())
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to create request").
				WithCause(err)
		}
		a.authorize(req)
		resp, err := a.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("request canceled").
					WithCause(ctx.Err())
			}
			lastErr = err
			if attempt < a.cfg.retries-1 {
				log.Ctx(ctx).Debug().Err(err).Str("url", location).Int("attempt", attempt+1).Msg("retrying request")
				if err := waitRetry(ctx, httpRetryDelay(attempt, a.cfg)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request failed").
				WithCause(err)
		}
		if (resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests) && attempt < a.cfg.retries-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			log.Ctx(ctx).Debug().Int("status", resp.StatusCode).Str("url", location).Int("attempt", attempt+1).Msg("retrying request")
			if err := waitRetry(ctx, httpRetryDelay(attempt, a.cfg)); err != nil {
				return nil, err
			}
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request failed").
		WithCause(lastErr)
}

// authorize prefers a bearer token over basic auth.
func (a *HTTPFetcherAdapter) authorize(req *http.Request) {
	if token := strings.TrimSpace(a.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		return
	}
	if strings.TrimSpace(a.apiKey) != "" {
		authUser := strings.TrimSpace(a.user)
		if authUser == "" {
			authUser = "api"
		}
		req.SetBasicAuth(authUser, a.apiKey)
	}
}

func waitRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("request canceled").
			WithCause(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func httpRetryDelay(attempt int, cfg httpRetryConfig) time.Duration {
	delay := cfg.baseDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

// LocationFetcherAdapter dispatches on the location scheme: http and https
// go to the HTTP fetcher, everything else is read from disk.
type LocationFetcherAdapter struct {
	File ports.DocumentFetcherPort
	HTTP ports.DocumentFetcherPort
}

func NewLocationFetcherAdapter(config types.CatalogConfig) (LocationFetcherAdapter, error) {
	httpFetcher, err := NewHTTPFetcherAdapter(config)
	if err != nil {
		return LocationFetcherAdapter{}, err
	}
	return LocationFetcherAdapter{
		File: NewFileFetcherAdapter(),
		HTTP: httpFetcher,
	}, nil
}

func (a LocationFetcherAdapter) Fetch(ctx context.Context, location string) ([]byte, error) {
	if isRemoteLocation(location) {
		return a.HTTP.Fetch(ctx, location)
	}
	return a.File.Fetch(ctx, location)
}

func isRemoteLocation(location string) bool {
	parsed, err := url.Parse(location)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

var _ ports.DocumentFetcherPort = FileFetcherAdapter{}
var _ ports.DocumentFetcherPort = (*HTTPFetcherAdapter)(nil)
var _ ports.DocumentFetcherPort = LocationFetcherAdapter{}
