package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrRepoOwnerNotFound = errors.New("repository host answered with a non-200 status")

// RepoLookup fetches the public repositories of a user on the repository host.
// The body is returned exactly as the host sent it.
type RepoLookup interface {
	FetchRepos(ctx context.Context, username string) (json.RawMessage, error)
}

// ResponseCache holds upstream bodies for a bounded time. A miss is (nil, false, nil).
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}
