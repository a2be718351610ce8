package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const (
	userAgent = "devconnect-api"
	pageSize  = 5
	// upstream bodies larger than this are rejected rather than relayed
	maxBodyBytes = 1 << 20
)

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        service.ResponseCache
	cacheTTL     time.Duration
	logger       logger.Logger
}

// NewClient builds the repository lookup. cache may be nil, in which case every call goes upstream.
func NewClient(cfg config.Config, cache service.ResponseCache, log logger.Logger) *Client {
	perSec := cfg.Github.RatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.Github.BaseURL, "/"),
		clientID:     cfg.Github.ClientID,
		clientSecret: cfg.Github.ClientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(perSec), int(perSec)+1),
		cache:        cache,
		cacheTTL:     cfg.Github.CacheTTL,
		logger:       log,
	}
}

var _ service.RepoLookup = (*Client)(nil)

func (c *Client) FetchRepos(ctx context.Context, username string) (json.RawMessage, error) {
	key := strings.ToLower(username)
	if body, ok := c.fromCache(ctx, key); ok {
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(pageSize))
	q.Set("sort", "created:asc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	switch {
	case c.clientID != "" && c.clientSecret != "":
		req.SetBasicAuth(c.clientID, c.clientSecret)
	case c.clientSecret != "":
		req.Header.Set("Authorization", "token "+c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Github lookup rejected", zap.String("username", username), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", service.ErrRepoOwnerNotFound, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read github response failed: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("github response exceeds %d bytes", maxBodyBytes)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("github response is not valid json")
	}

	c.toCache(ctx, key, body)
	return json.RawMessage(body), nil
}

// Cache errors never fail a lookup.
func (c *Client) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Github cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, ok
}

func (c *Client) toCache(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("Github cache write failed", zap.String("key", key), zap.Error(err))
	}
}
