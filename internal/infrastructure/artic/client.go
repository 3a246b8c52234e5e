package artic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/travel-planner/internal/core/domain/artwork"
	"github.com/avatarctic/travel-planner/internal/core/ports"
	"github.com/avatarctic/travel-planner/internal/infrastructure/cache"
)

// DefaultTimeout bounds a single Art Institute API request.
const DefaultTimeout = 5 * time.Second

// Config holds the Art Institute client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheMaxSize int
}

// NewTitleCache builds the process-wide title cache, or returns nil when
// caching is disabled (CacheTTL <= 0).
func NewTitleCache(cfg *Config) ports.TitleCache {
	if cfg == nil || cfg.CacheTTL <= 0 {
		return nil
	}
	return cache.New[string](cfg.CacheTTL, cfg.CacheMaxSize)
}

// Client resolves artwork titles against the Art Institute of Chicago API,
// serving repeated lookups from a TitleCache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   ports.TitleCache
	group   singleflight.Group
	logger  *logrus.Logger
}

// NewClient creates a client. A nil titleCache disables caching.
func NewClient(cfg *Config, titleCache ports.TitleCache, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		cache:   titleCache,
		logger:  logger,
	}
}

type artworkResponse struct {
	Data *struct {
		Title *string `json:"title"`
	} `json:"data"`
}

// ResolveTitle implements ports.ArtworkResolver.
func (c *Client) ResolveTitle(ctx context.Context, externalID string) (*string, error) {
	key := artwork.CacheKey(externalID)
	if c.cache != nil {
		if title, ok := c.cache.Get(key); ok {
			titleLookups.WithLabelValues(resultCacheHit).Inc()
			return &title, nil
		}
		// Get drops an expired entry on a miss.
		titleCacheEntries.Set(float64(c.cache.Len()))
	}

	// Concurrent misses for the same artwork share one outbound request. The
	// shared request ignores any single caller's cancellation; the client
	// timeout still bounds it.
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetchTitle(context.WithoutCancel(ctx), externalID)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, &artwork.UnreachableError{Err: ctx.Err()}
	}
	if res.Err != nil {
		return nil, res.Err
	}
	title, _ := res.Val.(*string)
	if title == nil {
		return nil, nil
	}
	// Each caller gets its own copy.
	t := *title
	return &t, nil
}

func (c *Client) fetchTitle(ctx context.Context, externalID string) (*string, error) {
	endpoint := c.baseURL + "/artworks/" + url.PathEscape(externalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		titleLookups.WithLabelValues(resultUnreachable).Inc()
		return nil, &artwork.UnreachableError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	apiDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		titleLookups.WithLabelValues(resultUnreachable).Inc()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"external_id": externalID}).WithError(err).Warn("artic: request failed")
		}
		return nil, &artwork.UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		titleLookups.WithLabelValues(resultNotFound).Inc()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"external_id": externalID, "status": resp.StatusCode}).Debug("artic: artwork not found")
		}
		return nil, &artwork.NotFoundError{ExternalID: externalID}
	}

	var body artworkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		titleLookups.WithLabelValues(resultNoTitle).Inc()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"external_id": externalID}).WithError(err).Warn("artic: unparseable artwork response")
		}
		return nil, nil
	}
	if body.Data == nil || body.Data.Title == nil {
		titleLookups.WithLabelValues(resultNoTitle).Inc()
		return nil, nil
	}

	title := *body.Data.Title
	if c.cache != nil {
		c.cache.Set(artwork.CacheKey(externalID), title)
		titleCacheEntries.Set(float64(c.cache.Len()))
	}
	titleLookups.WithLabelValues(resultResolved).Inc()
	return &title, nil
}
